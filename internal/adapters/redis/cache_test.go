package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "apsny_travel/internal/adapters/redis"
	"apsny_travel/internal/domain"
)

func TestCache_SetGetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()
	ctx := context.Background()

	var miss domain.Tour
	if ok, err := c.Get(ctx, "tour:lake-ritsa", &miss); ok || err != nil {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}

	in := domain.Tour{ID: "1", Slug: "lake-ritsa", PriceFrom: 4500, IsActive: true}
	if err := c.Set(ctx, "tour:lake-ritsa", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("apsny:tour:lake-ritsa") {
		t.Fatalf("expected prefixed key in redis, keys=%v", mr.Keys())
	}

	var out domain.Tour
	ok, err := c.Get(ctx, "tour:lake-ritsa", &out)
	if !ok || err != nil {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if out.PriceFrom != 4500 || out.Slug != "lake-ritsa" {
		t.Fatalf("unexpected cached tour: %+v", out)
	}

	if err := c.Del(ctx, "tour:lake-ritsa"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "tour:lake-ritsa", &out); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCache_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "tours:active", []domain.Tour{{ID: "1"}}, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var out []domain.Tour
	if ok, _ := c.Get(ctx, "tours:active", &out); ok {
		t.Fatalf("expected entry to expire")
	}
}
