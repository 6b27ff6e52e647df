package board

import (
	"reflect"
	"testing"
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

func TestRank(t *testing.T) {
	t.Parallel()

	totals := map[string]int{"alice": 150, "bob": 100, "carol": 150, "dave": 50}
	got := Rank(totals, 5)
	want := []models.LeaderboardEntry{
		{Rank: 1, Name: "alice", Points: 150},
		{Rank: 2, Name: "carol", Points: 150}, // tie broken by name
		{Rank: 3, Name: "bob", Points: 100},
		{Rank: 4, Name: "dave", Points: 50},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Rank = %+v, want %+v", got, want)
	}
}

func TestRankTruncatesToLimit(t *testing.T) {
	t.Parallel()

	totals := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6, "g": 7}
	got := Rank(totals, 5)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0].Name != "g" || got[0].Points != 7 || got[0].Rank != 1 {
		t.Fatalf("top entry = %+v, want g/7/rank 1", got[0])
	}

	// Fewer users than limit: length = distinct users.
	if got := Rank(map[string]int{"a": 1}, 5); len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

// Ranking an already-ranked-and-truncated result again yields the same output.
func TestRankIdempotent(t *testing.T) {
	t.Parallel()

	totals := map[string]int{"alice": 150, "bob": 100, "carol": 75}
	first := Rank(totals, 5)

	again := make(map[string]int, len(first))
	for _, e := range first {
		again[e.Name] = e.Points
	}
	second := Rank(again, 5)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-rank changed result:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestRankSortedDescending(t *testing.T) {
	t.Parallel()

	totals := map[string]int{"a": 3, "b": 9, "c": 1, "d": 9, "e": 4}
	got := Rank(totals, 0)
	for i := 1; i < len(got); i++ {
		if got[i].Points > got[i-1].Points {
			t.Fatalf("not descending at %d: %+v", i, got)
		}
		if got[i].Rank != got[i-1].Rank+1 {
			t.Fatalf("ranks not consecutive at %d: %+v", i, got)
		}
	}
}

// End-to-end shape from the employee dashboard: ledger -> totals -> top 5.
func TestLeaderboardEndToEnd(t *testing.T) {
	t.Parallel()

	now := time.Now()
	entries := []models.PointEntry{
		{UserName: "alice", Points: 50, TaskID: "t0", Timestamp: now},
		{UserName: "bob", Points: 100, TaskID: "t1", Timestamp: now},
		{UserName: "alice", Points: 100, TaskID: "t2", Timestamp: now},
	}
	got := Leaderboard(entries, models.WindowAllTime, 5, now)
	want := []models.LeaderboardEntry{
		{Rank: 1, Name: "alice", Points: 150},
		{Rank: 2, Name: "bob", Points: 100},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Leaderboard = %+v, want %+v", got, want)
	}
}
