package utils

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p *Pagination) SetLimit(queryLimit string) error {
	if queryLimit == "" {
		p.Limit = defaultLimit
		return nil
	}
	limit, err := strconv.Atoi(queryLimit)
	if err != nil {
		return fmt.Errorf("invalid limit: %w", err)
	}
	if limit < 1 || limit > maxLimit {
		return fmt.Errorf("invalid limit: must be between 1 and %d", maxLimit)
	}
	p.Limit = limit
	return nil
}

func (p *Pagination) SetPage(queryPage string) error {
	if queryPage == "" {
		p.Page = defaultPage
		return nil
	}
	page, err := strconv.Atoi(queryPage)
	if err != nil {
		return fmt.Errorf("invalid page: %w", err)
	}
	if page < 1 {
		return fmt.Errorf("invalid page: must be at least 1")
	}
	p.Page = page
	return nil
}

func (p *Pagination) GetPage() int {
	if p.Page < 1 {
		return defaultPage
	}
	return p.Page
}

func (p *Pagination) GetLimit() int {
	if p.Limit < 1 || p.Limit > maxLimit {
		return defaultLimit
	}
	return p.Limit
}

func (p *Pagination) GetOffset() int {
	return (p.GetPage() - 1) * p.GetLimit()
}

func GetPaginationFromCtx(ctx echo.Context) (*Pagination, error) {
	p := &Pagination{}
	if err := p.SetLimit(ctx.QueryParam("limit")); err != nil {
		return nil, err
	}
	if err := p.SetPage(ctx.QueryParam("page")); err != nil {
		return nil, err
	}
	return p, nil
}
