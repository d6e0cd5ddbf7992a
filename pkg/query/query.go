// Package query turns a declarative listing description into one gorm
// query: filter, optional text search, optional one-to-one left join,
// projection allow-list, stable sort, pagination. Every paginated or
// joined read in the service layer goes through it so the stages are
// applied in the same order everywhere.
package query

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/cliptube/backend/pkg/apperror"
)

type Op string

const (
	OpEq  Op = "eq"
	OpNeq Op = "neq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

var sqlOps = map[Op]string{
	OpEq:  "=",
	OpNeq: "<>",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// Filter is an equality/range predicate on one column.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Search matches Text case-insensitively against each of Columns.
type Search struct {
	Text    string
	Columns []string
}

// Join enriches each row from one related table. It is always a left
// join: rows without a match are kept and the joined columns scan as
// NULL. Select lists the aliased columns to pull from the joined table,
// e.g. "users.username AS owner_username"; the aliases land as flat
// fields on the projection struct.
type Join struct {
	Table  string
	On     string
	Select []string
}

type Sort struct {
	Column string
	Desc   bool
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Spec is the full description of one listing query.
type Spec struct {
	Filters []Filter
	Search  *Search
	Joins   []Join

	// Select is the projection allow-list. Internal columns stay out of
	// responses unless named here.
	Select []string

	Sort Sort
	// TieBreak is appended after the sort column so pages stay stable
	// when the sort key has duplicates. Defaults to "id".
	TieBreak string

	Page     int
	PageSize int
}

// Meta reports pagination bookkeeping. HasMatches distinguishes "the
// filter matched nothing" from "the page is past the last row"; both
// produce an empty Items slice.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	PageSize    int   `json:"page_size"`
	HasMatches  bool  `json:"has_matches"`
}

type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// Column names end up interpolated into SQL, so they are restricted to
// plain (optionally table-qualified, optionally aliased) identifiers.
var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?( [Aa][Ss] [a-zA-Z_][a-zA-Z0-9_]*)?$`)

func validIdent(s string) bool {
	return identRe.MatchString(s)
}

// Validate rejects specs that would interpolate anything but plain
// identifiers, or that miss required stages.
func (s Spec) Validate() error {
	if len(s.Select) == 0 {
		return fmt.Errorf("projection must not be empty: %w", apperror.ErrInvalidInput)
	}
	for _, col := range s.Select {
		if !validIdent(col) {
			return fmt.Errorf("invalid projection column %q: %w", col, apperror.ErrInvalidInput)
		}
	}
	for _, f := range s.Filters {
		if !validIdent(f.Column) {
			return fmt.Errorf("invalid filter column %q: %w", f.Column, apperror.ErrInvalidInput)
		}
		if _, ok := sqlOps[f.Op]; !ok && f.Op != OpIn {
			return fmt.Errorf("unknown filter op %q: %w", f.Op, apperror.ErrInvalidInput)
		}
	}
	if s.Search != nil {
		if len(s.Search.Columns) == 0 {
			return fmt.Errorf("search needs at least one column: %w", apperror.ErrInvalidInput)
		}
		for _, col := range s.Search.Columns {
			if !validIdent(col) {
				return fmt.Errorf("invalid search column %q: %w", col, apperror.ErrInvalidInput)
			}
		}
	}
	for _, j := range s.Joins {
		for _, col := range j.Select {
			if !validIdent(col) {
				return fmt.Errorf("invalid join column %q: %w", col, apperror.ErrInvalidInput)
			}
		}
	}
	if s.Sort.Column == "" || !validIdent(s.Sort.Column) {
		return fmt.Errorf("invalid sort column %q: %w", s.Sort.Column, apperror.ErrInvalidInput)
	}
	if s.TieBreak != "" && !validIdent(s.TieBreak) {
		return fmt.Errorf("invalid tie-break column %q: %w", s.TieBreak, apperror.ErrInvalidInput)
	}
	return nil
}

// Clamp normalizes pagination to positive values and returns the
// effective page and page size.
func (s Spec) Clamp() (page, pageSize int) {
	page = s.Page
	if page < 1 {
		page = 1
	}
	pageSize = s.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// filtered applies the join, filter, and search stages. Counting runs
// on this query; the joins are one-to-one left joins, so they never
// change the row count but filters may reference their columns.
func (s Spec) filtered(db *gorm.DB, model any) *gorm.DB {
	q := db.Model(model)
	for _, j := range s.Joins {
		q = q.Joins(fmt.Sprintf("LEFT JOIN %s ON %s", j.Table, j.On))
	}
	for _, f := range s.Filters {
		if f.Op == OpIn {
			q = q.Where(fmt.Sprintf("%s IN ?", f.Column), f.Value)
			continue
		}
		q = q.Where(fmt.Sprintf("%s %s ?", f.Column, sqlOps[f.Op]), f.Value)
	}
	if s.Search != nil && strings.TrimSpace(s.Search.Text) != "" {
		pattern := "%" + strings.TrimSpace(s.Search.Text) + "%"
		conds := make([]string, len(s.Search.Columns))
		args := make([]any, len(s.Search.Columns))
		for i, col := range s.Search.Columns {
			conds[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		q = q.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	return q
}

// Build translates the full spec into a gorm query, pagination
// included. Callers are expected to have validated the spec.
func (s Spec) Build(db *gorm.DB, model any) *gorm.DB {
	page, pageSize := s.Clamp()

	q := s.filtered(db, model)

	sel := append([]string{}, s.Select...)
	for _, j := range s.Joins {
		sel = append(sel, j.Select...)
	}
	q = q.Select(strings.Join(sel, ", "))

	dir := "ASC"
	if s.Sort.Desc {
		dir = "DESC"
	}
	tieBreak := s.TieBreak
	if tieBreak == "" {
		tieBreak = "id"
	}
	q = q.Order(fmt.Sprintf("%s %s", s.Sort.Column, dir))
	if tieBreak != s.Sort.Column {
		q = q.Order(tieBreak + " ASC")
	}

	return q.Offset((page - 1) * pageSize).Limit(pageSize)
}

// Run validates, counts, and executes the spec, scanning the page into
// T. An empty page is a normal result, never an error.
func Run[T any](ctx context.Context, db *gorm.DB, model any, s Spec) (*Page[T], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	page, pageSize := s.Clamp()

	var total int64
	if err := s.filtered(db.WithContext(ctx), model).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]T, 0, pageSize)
	if total > 0 {
		if err := s.Build(db.WithContext(ctx), model).Scan(&items).Error; err != nil {
			return nil, err
		}
	}

	return &Page[T]{
		Items: items,
		Meta:  pageMeta(page, pageSize, total),
	}, nil
}

// pageMeta computes the bookkeeping for a page request against the
// total matching rows. Requesting a page past the last one is not an
// error: the page comes back empty but HasMatches still reports that
// the filter found rows.
func pageMeta(page, pageSize int, total int64) Meta {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Meta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		PageSize:    pageSize,
		HasMatches:  total > 0,
	}
}
