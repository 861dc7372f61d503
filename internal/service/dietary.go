package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var culturalResearcher = Persona{
	Role:      "Cultural Food Researcher",
	Goal:      "Identify current festivals and associated dietary restrictions.",
	Backstory: "An expert in cultural food practices and dietary restrictions related to festivals and holidays.",
}

// DietaryService computes the dietary restrictions applicable today from a
// web search plus a single completion call. It must never fail the caller's
// request: every error branch degrades to an empty set.
type DietaryService struct {
	search     SearchClient
	llm        CompletionClient
	redis      *redis.Client
	maxResults int
	now        func() time.Time
}

// NewDietaryService creates a new DietaryService instance. The Redis client
// is optional; without it each request recomputes the restrictions.
func NewDietaryService(search SearchClient, llm CompletionClient, redisClient *redis.Client, maxResults int) *DietaryService {
	return &DietaryService{
		search:     search,
		llm:        llm,
		redis:      redisClient,
		maxResults: maxResults,
		now:        time.Now,
	}
}

// TodaysRestrictions returns today's restriction strings, possibly empty.
func (s *DietaryService) TodaysRestrictions(ctx context.Context) []string {
	cacheKey := fmt.Sprintf("dietary:restrictions:%s", s.now().Format("2006-01-02"))
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []string
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	restrictions := s.lookup(ctx)

	if s.redis != nil {
		if data, err := json.Marshal(restrictions); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, 24*time.Hour).Err(); err != nil {
				log.Printf("[DietaryService] failed to cache restrictions: %v", err)
			}
		}
	}

	return restrictions
}

func (s *DietaryService) lookup(ctx context.Context) []string {
	today := s.now().Format("January 2")

	results, err := s.search.Search(ctx, fmt.Sprintf("dietary restrictions or food restrictions during %s festivals or holidays", today))
	if err != nil {
		log.Printf("[DietaryService] search failed, assuming no restrictions: %v", err)
		return []string{}
	}

	contents := make([]string, 0, len(results))
	for i, r := range results {
		if i >= s.maxResults {
			break
		}
		contents = append(contents, r.Content)
	}

	task := fmt.Sprintf(
		"Today is %s. Based on the following search results, identify any religious or cultural festivals occurring today and their associated dietary restrictions:\n%s\nFocus on restrictions related to vegetarianism, beef, pork, or other significant food restrictions.",
		today, strings.Join(contents, "\n"),
	)

	raw, err := s.llm.Complete(ctx, culturalResearcher, task,
		"A list of dietary restrictions in JSON format with each restriction as a string.")
	if err != nil {
		log.Printf("[DietaryService] completion failed, assuming no restrictions: %v", err)
		return []string{}
	}

	value, err := Normalize("dietary", TextOutput(raw))
	if err != nil {
		log.Printf("[DietaryService] could not parse restrictions, assuming none: %v", err)
		return []string{}
	}

	var restrictions []string
	if err := decodeInto(value, &restrictions); err != nil {
		log.Printf("[DietaryService] restrictions were not a list of strings, assuming none: %v", err)
		return []string{}
	}
	return restrictions
}
