package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-storefront-search/internal/config"
	"github.com/tbourn/go-storefront-search/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:tracking_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.SearchTerm{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// recordingTracker captures Track calls and can be told to fail.
type recordingTracker struct {
	mu    sync.Mutex
	terms []string
	err   error
	delay time.Duration
}

func (r *recordingTracker) Track(ctx context.Context, term string) error {
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.terms = append(r.terms, term)
	return nil
}

func (r *recordingTracker) Top(context.Context, int) ([]domain.SearchTerm, error) { return nil, nil }

func TestNormalize(t *testing.T) {
	if got := Normalize("  Desk LAMP "); got != "desk lamp" {
		t.Fatalf("Normalize = %q", got)
	}
	if Normalize("   ") != "" {
		t.Fatalf("blank should normalize to empty")
	}
}

func TestNoop(t *testing.T) {
	var n Noop
	if err := n.Track(context.Background(), "x"); err != nil {
		t.Fatalf("Noop.Track: %v", err)
	}
	top, err := n.Top(context.Background(), 5)
	if err != nil || top == nil || len(top) != 0 {
		t.Fatalf("Noop.Top = %v, %v", top, err)
	}
}

func TestDBTracker_TrackAndTop(t *testing.T) {
	db := newTestDB(t)
	tr := NewDBTracker(db)
	ctx := context.Background()
	for _, term := range []string{"lamp", "desk", "lamp"} {
		if err := tr.Track(ctx, term); err != nil {
			t.Fatalf("Track(%q): %v", term, err)
		}
	}
	top, err := tr.Top(ctx, 10)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 2 || top[0].Term != "lamp" || top[0].Count != 2 || top[1].Term != "desk" {
		t.Fatalf("unexpected ranking: %+v", top)
	}
}

func TestDispatcher_NormalizesAndSkipsBlank(t *testing.T) {
	rec := &recordingTracker{}
	d := NewDispatcher(rec, time.Second)

	d.Dispatch("  Headphones ")
	d.Dispatch("   ")
	d.Wait()

	if len(rec.terms) != 1 || rec.terms[0] != "headphones" {
		t.Fatalf("tracked terms = %v", rec.terms)
	}
}

func TestDispatcher_DoesNotBlockCaller(t *testing.T) {
	rec := &recordingTracker{delay: 200 * time.Millisecond}
	d := NewDispatcher(rec, time.Second)

	start := time.Now()
	d.Dispatch("slow")
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("Dispatch blocked for %v", elapsed)
	}
	d.Wait()
	if len(rec.terms) != 1 {
		t.Fatalf("expected the slow call to finish, got %v", rec.terms)
	}
}

func TestDispatcher_FailuresAreCountedAndSwallowed(t *testing.T) {
	rec := &recordingTracker{err: errors.New("db down")}
	d := NewDispatcher(rec, time.Second)
	before := testutil.ToFloat64(trackFailures)

	d.Dispatch("lamp")
	d.Wait()

	if got := testutil.ToFloat64(trackFailures) - before; got != 1 {
		t.Fatalf("failure counter delta = %v", got)
	}
}

func TestDispatcher_TimeoutBoundsCall(t *testing.T) {
	rec := &recordingTracker{delay: time.Second}
	d := NewDispatcher(rec, 20*time.Millisecond)
	before := testutil.ToFloat64(trackFailures)

	start := time.Now()
	d.Dispatch("lamp")
	d.Wait()
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("timeout not applied")
	}
	if got := testutil.ToFloat64(trackFailures) - before; got != 1 {
		t.Fatalf("timed-out call should count as failure, delta = %v", got)
	}
}

func TestNewDispatcher_Defaults(t *testing.T) {
	d := NewDispatcher(nil, 0)
	if d.timeout != DefaultTimeout {
		t.Fatalf("timeout = %v", d.timeout)
	}
	if _, ok := d.Tracker().(Noop); !ok {
		t.Fatalf("nil tracker should become Noop, got %T", d.Tracker())
	}
}

// fakeZSet implements zsetClient in memory.
type fakeZSet struct {
	mu     sync.Mutex
	scores map[string]float64
	err    error
	closed bool
}

func (f *fakeZSet) ZIncrBy(_ context.Context, _ string, inc float64, member string) *redis.FloatCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewFloatResult(0, f.err)
	}
	if f.scores == nil {
		f.scores = map[string]float64{}
	}
	f.scores[member] += inc
	return redis.NewFloatResult(f.scores[member], nil)
}

func (f *fakeZSet) ZRevRangeWithScores(_ context.Context, _ string, start, stop int64) *redis.ZSliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewZSliceCmdResult(nil, f.err)
	}
	zs := make([]redis.Z, 0, len(f.scores))
	for m, s := range f.scores {
		zs = append(zs, redis.Z{Score: s, Member: m})
	}
	// Highest score first, member descending on ties like Redis.
	for i := 1; i < len(zs); i++ {
		for j := i; j > 0; j-- {
			a, b := zs[j-1], zs[j]
			if a.Score < b.Score || (a.Score == b.Score && a.Member.(string) < b.Member.(string)) {
				zs[j-1], zs[j] = b, a
			}
		}
	}
	if stop >= int64(len(zs)) {
		stop = int64(len(zs)) - 1
	}
	if start > stop {
		return redis.NewZSliceCmdResult([]redis.Z{}, nil)
	}
	return redis.NewZSliceCmdResult(zs[start:stop+1], nil)
}

func (f *fakeZSet) Close() error { f.closed = true; return nil }

func TestRedisTracker_TrackAndTop(t *testing.T) {
	fz := &fakeZSet{}
	tr := &RedisTracker{client: fz, key: "terms"}
	ctx := context.Background()

	for _, term := range []string{"lamp", "desk", "lamp", "chair", "lamp", "desk"} {
		if err := tr.Track(ctx, term); err != nil {
			t.Fatalf("Track: %v", err)
		}
	}
	top, err := tr.Top(ctx, 2)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 2 || top[0].Term != "lamp" || top[0].Count != 3 || top[1].Term != "desk" || top[1].Count != 2 {
		t.Fatalf("unexpected ranking: %+v", top)
	}

	if empty, err := tr.Top(ctx, 0); err != nil || len(empty) != 0 {
		t.Fatalf("Top(0) = %v, %v", empty, err)
	}
	if err := tr.Close(); err != nil || !fz.closed {
		t.Fatalf("Close should close the client")
	}
}

func TestRedisTracker_Errors(t *testing.T) {
	tr := &RedisTracker{client: &fakeZSet{err: errors.New("conn refused")}, key: "terms"}
	if err := tr.Track(context.Background(), "lamp"); err == nil {
		t.Fatalf("expected Track error")
	}
	if _, err := tr.Top(context.Background(), 5); err == nil {
		t.Fatalf("expected Top error")
	}
}

func TestFromConfig(t *testing.T) {
	db := newTestDB(t)

	cfg := config.Config{Tracking: config.TrackingConfig{Backend: "none"}}
	tr, closeFn, err := FromConfig(cfg, db)
	if err != nil || closeFn == nil {
		t.Fatalf("FromConfig(none): %v", err)
	}
	if _, ok := tr.(Noop); !ok {
		t.Fatalf("expected Noop, got %T", tr)
	}

	cfg.Tracking.Backend = "db"
	tr, closeFn, err = FromConfig(cfg, db)
	if err != nil || closeFn() != nil {
		t.Fatalf("FromConfig(db): %v", err)
	}
	if _, ok := tr.(*DBTracker); !ok {
		t.Fatalf("expected *DBTracker, got %T", tr)
	}

	// Nothing listens on port 1, so the ping fails fast.
	cfg.Tracking.Backend = "redis"
	cfg.Redis = config.RedisConfig{Addr: "127.0.0.1:1", Key: "terms"}
	if _, _, err := FromConfig(cfg, db); err == nil {
		t.Fatalf("expected redis connection error")
	}
}
