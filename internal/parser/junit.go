package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"jsplit/internal/domain"
)

// JUnitParser parses JUnit XML reports into suites
type JUnitParser struct{}

// NewJUnitParser creates a new JUnitParser
func NewJUnitParser() *JUnitParser {
	return &JUnitParser{}
}

type junitSuite struct {
	Name      string       `xml:"name,attr"`
	Time      string       `xml:"time,attr"`
	TestCases []junitCase  `xml:"testcase"`
	Suites    []junitSuite `xml:"testsuite"`
}

type junitCase struct {
	Name      string `xml:"name,attr"`
	ClassName string `xml:"classname,attr"`
	Time      string `xml:"time,attr"`
}

// ParseFile reads a report file. Every returned suite has Source set to path.
func (p *JUnitParser) ParseFile(path string) ([]domain.Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't read report %s: %w", path, err)
	}
	defer f.Close()

	suites, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("can't parse report %s: %w", path, err)
	}
	for i := range suites {
		suites[i].Source = path
	}
	return suites, nil
}

// Parse decodes a report whose root is <testsuite> (one suite) or
// <testsuites> (each child suite, nested ones included, becomes a suite).
func (p *JUnitParser) Parse(r io.Reader) ([]domain.Suite, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no root element")
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		var root junitSuite
		if err := dec.DecodeElement(&root, &start); err != nil {
			return nil, fmt.Errorf("decode %s: %w", start.Name.Local, err)
		}

		switch start.Name.Local {
		case "testsuite":
			suite, err := convertSuite(root)
			if err != nil {
				return nil, err
			}
			return []domain.Suite{suite}, nil
		case "testsuites":
			return flattenSuites(root.Suites)
		default:
			return nil, fmt.Errorf("unexpected root element <%s>", start.Name.Local)
		}
	}
}

func flattenSuites(raw []junitSuite) ([]domain.Suite, error) {
	suites := make([]domain.Suite, 0, len(raw))
	for _, s := range raw {
		if len(s.Suites) > 0 {
			nested, err := flattenSuites(s.Suites)
			if err != nil {
				return nil, err
			}
			suites = append(suites, nested...)
			if len(s.TestCases) == 0 {
				continue
			}
		}
		suite, err := convertSuite(s)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

// convertSuite maps the XML shape to a Suite. A suite without a time
// attribute gets the sum of its test case times.
func convertSuite(raw junitSuite) (domain.Suite, error) {
	suite := domain.Suite{Name: raw.Name}

	var caseTotal float64
	for _, c := range raw.TestCases {
		d, err := parseSeconds(c.Time)
		if err != nil {
			return domain.Suite{}, fmt.Errorf("testcase %s: %w", c.Name, err)
		}
		caseTotal += d
		suite.TestCases = append(suite.TestCases, domain.TestCase{
			Name:      c.Name,
			ClassName: c.ClassName,
			Duration:  d,
		})
	}

	if strings.TrimSpace(raw.Time) == "" {
		suite.Duration = caseTotal
		return suite, nil
	}
	d, err := parseSeconds(raw.Time)
	if err != nil {
		return domain.Suite{}, fmt.Errorf("testsuite %s: %w", raw.Name, err)
	}
	suite.Duration = d
	return suite, nil
}

// parseSeconds parses a JUnit time attribute. Some reporters write
// thousands separators ("1,234.5").
func parseSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return d, nil
}
