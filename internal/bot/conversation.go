package bot

import "github.com/example/lingoladder/pkg/models"

type action string

const (
	actionTest   action = "test"
	actionReview action = "review"
)

// conversation is the multi-message exchange a user is in the middle of.
type conversation struct {
	Action action
	Level  int
	Step   int

	// test
	Words   []models.WordPair
	Answers []models.ItemResult

	// review
	Reviews []models.ReviewQueueEntry
}

func newTest(level int, words []models.WordPair) *conversation {
	return &conversation{Action: actionTest, Level: level, Words: words}
}

func newReview(entries []models.ReviewQueueEntry) *conversation {
	return &conversation{Action: actionReview, Reviews: entries}
}

// done reports whether every prompt has been answered.
func (c *conversation) done() bool {
	switch c.Action {
	case actionTest:
		return c.Step >= len(c.Words)
	case actionReview:
		return c.Step >= len(c.Reviews)
	}
	return true
}

func (c *conversation) currentWord() models.WordPair {
	return c.Words[c.Step]
}

func (c *conversation) currentReview() models.ReviewQueueEntry {
	return c.Reviews[c.Step]
}
