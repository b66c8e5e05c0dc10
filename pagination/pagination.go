// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package pagination splits gorm queries into numbered pages.
package pagination

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrPageOutOfRange = errors.New("page out of range")

// Page window sizes for IterPages
const (
	leftEdge     = 2
	leftCurrent  = 2
	rightCurrent = 4
	rightEdge    = 2
)

type Page struct {
	Page    int
	PerPage int
	Total   int64
	Pages   int
}

// New computes page metadata for total rows
func New(page, perPage int, total int64) Page {
	p := Page{Page: page, PerPage: perPage, Total: total}
	if perPage > 0 && total > 0 {
		p.Pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return p
}

func (p Page) Offset() int { return (p.Page - 1) * p.PerPage }

func (p Page) HasPrev() bool { return p.Page > 1 }

func (p Page) HasNext() bool { return p.Page < p.Pages }

// PrevNum is nil on the first page
func (p Page) PrevNum() *int {
	if !p.HasPrev() {
		return nil
	}
	n := p.Page - 1
	return &n
}

// NextNum is nil on the last page
func (p Page) NextNum() *int {
	if !p.HasNext() {
		return nil
	}
	n := p.Page + 1
	return &n
}

// IterPages returns the page numbers to show in a pager. A nil entry marks
// a gap: the first two pages, two before and four after the current page,
// and the last two pages are listed.
func (p Page) IterPages() []*int {
	pages := []*int{}
	pagesEnd := p.Pages + 1
	if pagesEnd == 1 {
		return pages
	}

	appendRange := func(from, to int) {
		for i := from; i < to; i++ {
			n := i
			pages = append(pages, &n)
		}
	}

	leftEnd := min(1+leftEdge, pagesEnd)
	appendRange(1, leftEnd)
	if leftEnd == pagesEnd {
		return pages
	}

	// Pages past the end show the same strip as the last page
	current := min(p.Page, pagesEnd)
	midStart := max(leftEnd, current-leftCurrent)
	midEnd := min(current+rightCurrent+1, pagesEnd)
	if midStart-leftEnd > 0 {
		pages = append(pages, nil)
	}
	appendRange(midStart, midEnd)
	if midEnd == pagesEnd {
		return pages
	}

	rightStart := max(midEnd, pagesEnd-rightEdge)
	if rightStart-midEnd > 0 {
		pages = append(pages, nil)
	}
	appendRange(rightStart, pagesEnd)

	return pages
}

// Paginate counts the rows matched by query and loads one page of them into
// dest. In strict mode a page below 1, or a page past the last one other
// than the first, fails with ErrPageOutOfRange. In lenient mode a page below
// 1 becomes 1 and a page past the last leaves dest untouched.
// preloads name associations loaded for the page only, never for the count.
func Paginate(query *gorm.DB, page, perPage int, strict bool, dest any, preloads ...string) (Page, error) {
	if page < 1 || perPage < 1 {
		if strict {
			return Page{}, ErrPageOutOfRange
		}
		page = max(page, 1)
		perPage = max(perPage, 1)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page{}, fmt.Errorf("failed to count rows: %w", err)
	}

	p := New(page, perPage, total)
	if page > p.Pages && page != 1 {
		if strict {
			return Page{}, ErrPageOutOfRange
		}
		return p, nil
	}

	load := query.Session(&gorm.Session{})
	for _, assoc := range preloads {
		load = load.Preload(assoc)
	}
	result := load.Offset(p.Offset()).Limit(perPage).Find(dest)
	if result.Error != nil {
		return Page{}, fmt.Errorf("failed to load page: %w", result.Error)
	}

	return p, nil
}
