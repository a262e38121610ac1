package main

import (
	"testing"
	"time"
)

func TestStoreStats(t *testing.T) {
	st, err := openMemoryStore()
	if err != nil {
		t.Fatalf("openMemoryStore: %v", err)
	}
	defer st.Close()

	visits := []struct {
		ip string
		at time.Time
	}{
		{"aaa", testNow.Add(-time.Hour)},
		{"aaa", testNow.Add(-2 * time.Hour)},
		{"bbb", testNow.AddDate(0, 0, -3)},
		{"ccc", testNow.AddDate(0, 0, -30)},
	}
	for _, v := range visits {
		if err := st.recordVisit(v.ip, "test-agent", "/", v.at); err != nil {
			t.Fatalf("recordVisit: %v", err)
		}
	}

	for i := 0; i < 3; i++ {
		if err := st.recordInteraction("aaa", kindCarousel, "carmela:next", testNow); err != nil {
			t.Fatalf("recordInteraction: %v", err)
		}
	}
	_ = st.recordInteraction("bbb", kindEmailCopy, "", testNow)
	_ = st.recordInteraction("bbb", kindEmailCopyFailed, "", testNow)

	stats, err := st.stats(testNow)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalVisitors != 4 {
		t.Errorf("expected 4 visits, got %d", stats.TotalVisitors)
	}
	if stats.UniqueVisitors != 3 {
		t.Errorf("expected 3 unique visitors, got %d", stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 2 {
		t.Errorf("expected 2 visits today, got %d", stats.VisitorsToday)
	}
	if stats.VisitorsThisWeek != 3 {
		t.Errorf("expected 3 visits this week, got %d", stats.VisitorsThisWeek)
	}
	if stats.TotalInteractions != 5 || stats.EmailCopies != 1 || stats.EmailCopyFailures != 1 {
		t.Errorf("unexpected interaction counts %+v", stats)
	}
	if len(stats.TopInteractions) == 0 || stats.TopInteractions[0].Target != "carmela:next" || stats.TopInteractions[0].Count != 3 {
		t.Errorf("unexpected top interactions %+v", stats.TopInteractions)
	}
	if len(stats.RecentVisitors) != 4 || stats.RecentVisitors[0].HashedIP != "aaa" {
		t.Errorf("unexpected recent visitors %+v", stats.RecentVisitors)
	}
}

func TestStoreCleanup(t *testing.T) {
	st, err := openMemoryStore()
	if err != nil {
		t.Fatalf("openMemoryStore: %v", err)
	}
	defer st.Close()

	_ = st.recordVisit("old", "", "/", testNow.AddDate(0, 0, -400))
	_ = st.recordVisit("new", "", "/", testNow.AddDate(0, 0, -10))
	_ = st.recordInteraction("old", kindHireToggle, "open", testNow.AddDate(0, 0, -400))

	n, err := st.cleanup(365, testNow)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows removed, got %d", n)
	}

	stats, err := st.stats(testNow)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalVisitors != 1 || stats.TotalInteractions != 0 {
		t.Errorf("unexpected stats after cleanup %+v", stats)
	}
}

func TestOpenStoreOnDisk(t *testing.T) {
	path := t.TempDir() + "/nested/portfolio.db"
	st, err := openStore(path)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	if err := st.recordVisit("x", "", "/", testNow); err != nil {
		t.Errorf("recordVisit: %v", err)
	}
	st.Close()

	// Reopening runs the migrations again against existing tables.
	st, err = openStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	stats, err := st.stats(testNow)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalVisitors != 1 {
		t.Errorf("expected the visit to persist, got %d", stats.TotalVisitors)
	}
}
