package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockClient serves canned questions for local development — no network, no
// API key.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	return buildMockJSON(10), nil
}

var mockSubjects = []string{
	"number series", "data structures", "reading comprehension",
	"percentages", "operating systems", "syllogisms",
}

func buildMockJSON(count int) string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < count; i++ {
		subject := mockSubjects[i%len(mockSubjects)]
		correct := i % 4

		if i > 0 {
			b.WriteString(",")
		}

		options := make([]string, 4)
		for j := 0; j < 4; j++ {
			label := "plausible but incorrect"
			if j == correct {
				label = "correct"
			}
			options[j] = fmt.Sprintf("[Mock] A %s statement about %s", label, subject)
		}

		b.WriteString(fmt.Sprintf(
			`{"question":"[Mock] Which of the following is true about %s?","options":[%q,%q,%q,%q],"correctAnswer":%d,"explanation":"[Mock] Option %d is correct because it accurately describes %s."}`,
			subject, options[0], options[1], options[2], options[3], correct, correct+1, subject))
	}
	b.WriteString("]")
	return b.String()
}
