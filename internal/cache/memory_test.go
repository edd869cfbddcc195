package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"formsight/internal/model"
)

func TestMemoryStatsCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryStatsCache(time.Minute)
	avg := 2.5
	in := &model.Summary{FormID: "f", ResponseCount: 2, Questions: map[string]*model.QuestionStats{
		"q": {Name: "q", Answers: []model.AnswerItem{model.NumberItem(2), model.StringItem("x"), model.NullItem()}, Average: &avg},
	}, Order: []string{"q"}}

	if err := c.Set(ctx, in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "f")
	if err != nil || got == nil {
		t.Fatalf("Get: %v %v", got, err)
	}
	items := got.Questions["q"].Answers
	if items[0].Kind != model.ItemNumber || items[1].Str != "x" || items[2].Kind != model.ItemNull {
		t.Fatalf("answer items did not survive the cache: %+v", items)
	}
	if *got.Questions["q"].Average != 2.5 {
		t.Fatalf("average lost")
	}

	if err := c.Invalidate(ctx, "f"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if got, _ := c.Get(ctx, "f"); got != nil {
		t.Fatalf("expected miss after invalidate")
	}
}

func TestMemoryPresentationCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPresentationCache(time.Nanosecond)
	if err := c.Set(ctx, &model.Presentation{ID: "p"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	if got, _ := c.Take(ctx, "p"); got != nil {
		t.Fatalf("expected expired presentation")
	}
}

func TestMemoryPresentationCacheTakeOnce(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPresentationCache(time.Minute)
	if err := c.Set(ctx, &model.Presentation{ID: "p", FormID: "f"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	const callers = 16
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		taken int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := c.Take(ctx, "p")
			if err != nil {
				t.Errorf("Take: %v", err)
				return
			}
			if p != nil {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if taken != 1 {
		t.Fatalf("presentation taken %d times, want 1", taken)
	}
}
