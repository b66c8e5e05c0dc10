// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages the tables of each app.

# Connecting

Open picks the driver from Config.DatabaseType and hands the live
connection to gorm:

	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}

  - postgres: github.com/lib/pq wrapped by gorm.io/driver/postgres
  - sqlite: modernc.org/sqlite (pure Go) wrapped by gorm.io/driver/sqlite

SQLite connections always run with foreign keys enabled and a single open
connection, which also keeps ":memory:" databases alive for tests.

# Migrations

Migrate runs AutoMigrate over the models of one app. Safe to call multiple
times.

	fyyur   venues, artists, shows
	trivia  categories, questions
	coffee  drinks
	pybo    users, question, answer, question_voter, answer_voter

# Relationships

	venue  1──* show *──1 artist
	users  1──* question 1──* answer
	users  *──* question (via question_voter)
	users  *──* answer   (via answer_voter)

Shows, questions and answers use ON DELETE CASCADE.

# Seeding

Seed fills empty tables with starter rows: the six trivia categories and
the coffee shop's water drink. Tables that already hold rows are left alone.

# Errors

IsUniqueViolation recognises duplicate key errors from either driver so
handlers can answer 409.
*/
package db
