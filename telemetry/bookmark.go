package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPopulationDoubled BookmarkType = "population_doubled"
	BookmarkBirthBurst        BookmarkType = "birth_burst"
	BookmarkPhaseSync         BookmarkType = "phase_sync"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	SimTimeSec  float64      `csv:"sim_time"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"sim_time", b.SimTimeSec,
		"description", b.Description,
	)
}

// BookmarkDetector flags notable windows: population doublings, bursts of
// duplication and runs where most cells sit in the same phase.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	milestone int  // population at the last doubling
	synced    bool // phase_sync fired and has not cleared yet
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkDoubling(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkBirthBurst(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkPhaseSync(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkDoubling(stats WindowStats) *Bookmark {
	if bd.milestone == 0 {
		bd.milestone = stats.Cells
		return nil
	}
	if stats.Cells < 2*bd.milestone {
		return nil
	}

	old := bd.milestone
	bd.milestone = stats.Cells
	return &Bookmark{
		Type:        BookmarkPopulationDoubled,
		Tick:        stats.WindowEndTick,
		SimTimeSec:  stats.SimTimeSec,
		Description: fmt.Sprintf("Population grew from %d to %d", old, stats.Cells),
	}
}

func (bd *BookmarkDetector) checkBirthBurst(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.BirthRate
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.BirthRate > avg*2.0 && stats.Births >= 5 {
		return &Bookmark{
			Type:        BookmarkBirthBurst,
			Tick:        stats.WindowEndTick,
			SimTimeSec:  stats.SimTimeSec,
			Description: fmt.Sprintf("Birth rate %.2f/s is %.1fx average (%.2f/s)", stats.BirthRate, stats.BirthRate/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPhaseSync(stats WindowStats) *Bookmark {
	if stats.Cells < 10 {
		return nil
	}

	counts := stats.PhaseCounts()
	best, bestCount := 0, 0
	for i, c := range counts {
		if c > bestCount {
			best, bestCount = i, c
		}
	}
	share := float64(bestCount) / float64(stats.Cells)

	// Re-arm only once occupancy has spread out again.
	if share < 0.4 {
		bd.synced = false
		return nil
	}
	if bd.synced || share <= 0.5 {
		return nil
	}

	bd.synced = true
	return &Bookmark{
		Type:        BookmarkPhaseSync,
		Tick:        stats.WindowEndTick,
		SimTimeSec:  stats.SimTimeSec,
		Description: fmt.Sprintf("%.0f%% of %d cells in phase %d", share*100, stats.Cells, best),
	}
}
