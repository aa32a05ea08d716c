package quiz

import (
	"github.com/abhisek/geoquiz/internal/dataset"
)

// datasetLoadedMsg is sent when the manifest load finishes.
type datasetLoadedMsg struct {
	Result dataset.LoadResult
}

// flagArtMsg carries a rendered flag for the question identified by Round.
type flagArtMsg struct {
	Round int
	Key   string
	Art   string
}

// quizEndMsg is sent to trigger the end-of-run flow.
type quizEndMsg struct{}
