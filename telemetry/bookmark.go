package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/npcbrain/behavior"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstContact BookmarkType = "first_contact"
	BookmarkAlertSurge   BookmarkType = "alert_surge"
	BookmarkChurnSpike   BookmarkType = "churn_spike"
	BookmarkSettled      BookmarkType = "settled"
)

// Bookmark marks a stats window worth a closer look.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        uint64       `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// settledWindows is the number of consecutive calm windows that count as settled.
const settledWindows = 5

// BookmarkDetector detects notable windows in the behavior stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historyIdx  int
	historyFull bool

	contactSeen bool
	calmStreak  int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{history: make([]WindowStats, historySize)}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkFirstContact,
		bd.checkAlertSurge,
		bd.checkChurnSpike,
		bd.checkSettled,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % len(bd.history)
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

// checkFirstContact fires once, on the first window with any agent pursuing
// or attacking the target.
func (bd *BookmarkDetector) checkFirstContact(stats WindowStats) *Bookmark {
	if bd.contactSeen {
		return nil
	}
	engaged := stats.Pursue + stats.Attack
	if engaged == 0 {
		return nil
	}
	bd.contactSeen = true
	return &Bookmark{
		Type:        BookmarkFirstContact,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Target engaged: %.0f%% of agent time pursuing or attacking", engaged*100),
	}
}

// checkAlertSurge fires when the alerted/blind share is at least a quarter
// of agent time and twice its rolling average.
func (bd *BookmarkDetector) checkAlertSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 2 {
		return nil
	}

	var sum float64
	for _, h := range history {
		sum += h.AlertedChase + h.Blind
	}
	avg := sum / float64(len(history))

	current := stats.AlertedChase + stats.Blind
	if current >= 0.25 && current > avg*2 {
		return &Bookmark{
			Type:        BookmarkAlertSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Alerted/blind share %.2f vs average %.2f", current, avg),
		}
	}
	return nil
}

// checkChurnSpike fires when transitions per window jump above twice the
// rolling average.
func (bd *BookmarkDetector) checkChurnSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Transitions
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Transitions) > avg*2 && stats.Transitions >= 10 {
		return &Bookmark{
			Type:        BookmarkChurnSpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d transitions is %.1fx average (%.1f)", stats.Transitions, float64(stats.Transitions)/avg, avg),
		}
	}
	return nil
}

// checkSettled fires once per calm streak, when agents have spent 90% of
// their time idling, patrolling or wandering for settledWindows windows.
func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	calm := stats.Occupancy(behavior.Idle) + stats.Occupancy(behavior.Patrol) + stats.Occupancy(behavior.Wander)
	if calm < 0.9 {
		bd.calmStreak = 0
		return nil
	}

	bd.calmStreak++
	if bd.calmStreak != settledWindows {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSettled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Calm for %d windows (%.0f%% idle/patrol/wander)", settledWindows, calm*100),
	}
}
