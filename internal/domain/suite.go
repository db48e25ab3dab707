package domain

// Suite represents one parsed test report (a JUnit <testsuite>)
type Suite struct {
	Name      string     `json:"name" yaml:"name"`         // Dotted identifier, e.g. scenario.SearchTest
	Duration  float64    `json:"duration" yaml:"duration"` // Total elapsed time in seconds
	TestCases []TestCase `json:"test_cases,omitempty" yaml:"test_cases,omitempty"`
	Source    string     `json:"source,omitempty" yaml:"source,omitempty"` // Report file the suite was read from
}

// TestCase represents a single test case within a suite
type TestCase struct {
	Name      string  `json:"name" yaml:"name"`
	ClassName string  `json:"classname" yaml:"classname"`
	Duration  float64 `json:"duration" yaml:"duration"`
}
