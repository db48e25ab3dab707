package parser

import (
	"io"

	"jsplit/internal/domain"
)

// Parser reads test suites from report files
type Parser interface {
	ParseFile(path string) ([]domain.Suite, error)
	Parse(r io.Reader) ([]domain.Suite, error)
}

var _ Parser = (*JUnitParser)(nil)
