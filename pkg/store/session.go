package store

import "qa-agent-be/pkg/qa/testcase"

// Session represents the active user session state in memory. Generated test
// cases are kept per session so a follow-up script request can reference
// them by test id without resending the whole case.
type Session struct {
	ID        string              `json:"id"` // value of the X-Session-Id header
	TestCases []testcase.TestCase `json:"test_cases"`

	// Last generated artifacts, for inspection and re-download
	LastScript string `json:"last_script"`
	LastQuery  string `json:"last_query"`
}

// FindTestCase returns the stored case with the given test id, if any.
func (s *Session) FindTestCase(testID string) (*testcase.TestCase, bool) {
	for i := range s.TestCases {
		if s.TestCases[i].TestID == testID {
			return &s.TestCases[i], true
		}
	}
	return nil, false
}
