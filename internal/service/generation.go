package service

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/singleflight"

	"wikiquiz/internal/cache"
	"wikiquiz/internal/config"
	"wikiquiz/internal/domain"
	"wikiquiz/internal/logger"
	"wikiquiz/internal/validation"

	"go.uber.org/zap"
)

// GenerationService runs the article-to-quiz pipeline.
type GenerationService interface {
	GenerateQuiz(ctx context.Context, wikipediaURL string) (*domain.QuizPayload, error)
}

// generationService sequences the pipeline: validate → fetch → extract →
// prompt → complete → parse → attach URL. Every failure is terminal; no
// partial payload is ever returned. Persistence and caching happen after a
// successful parse and never fail the request.
type generationService struct {
	validator  *validation.Validator
	fetcher    domain.ArticleFetcher
	extractor  domain.ArticleExtractor
	prompts    *PromptBuilder
	completion domain.CompletionClient
	parser     *ResponseParser
	repo       domain.QuizRepository
	cache      domain.Cache
	cfg        *config.Config
	group      singleflight.Group
}

// NewGenerationService creates a new instance of generationService.
// repo and cacheAdapter may be nil, in which case persistence or caching is
// skipped.
func NewGenerationService(
	validator *validation.Validator,
	fetcher domain.ArticleFetcher,
	extractor domain.ArticleExtractor,
	prompts *PromptBuilder,
	completion domain.CompletionClient,
	parser *ResponseParser,
	repo domain.QuizRepository,
	cacheAdapter domain.Cache,
	cfg *config.Config,
) GenerationService {
	return &generationService{
		validator:  validator,
		fetcher:    fetcher,
		extractor:  extractor,
		prompts:    prompts,
		completion: completion,
		parser:     parser,
		repo:       repo,
		cache:      cacheAdapter,
		cfg:        cfg,
	}
}

// GenerateQuiz implements GenerationService
func (s *generationService) GenerateQuiz(ctx context.Context, wikipediaURL string) (*domain.QuizPayload, error) {
	if err := s.validator.ValidateWikipediaURL(wikipediaURL); err != nil {
		return nil, err
	}

	if payload := s.lookupCache(ctx, wikipediaURL); payload != nil {
		logger.Get().Info("Returning cached quiz payload", zap.String("url", wikipediaURL))
		return payload, nil
	}

	// Concurrent requests for the same article share one pipeline run.
	result, err, _ := s.group.Do(wikipediaURL, func() (interface{}, error) {
		return s.runPipeline(ctx, wikipediaURL)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.QuizPayload), nil
}

func (s *generationService) runPipeline(ctx context.Context, wikipediaURL string) (*domain.QuizPayload, error) {
	log := logger.Get()

	html, err := s.fetcher.Fetch(ctx, wikipediaURL)
	if err != nil {
		return nil, err
	}

	article, err := s.extractor.Extract(html)
	if err != nil {
		return nil, err
	}
	log.Info("Extracted article text",
		zap.String("title", article.Title),
		zap.Int("body_length", len(article.Body)))

	systemPrompt, userPrompt := s.prompts.Build(article)

	completionText, err := s.completion.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	payload, err := s.parser.Parse(completionText)
	if err != nil {
		return nil, err
	}
	payload.WikipediaURL = wikipediaURL

	log.Info("Generated quiz payload",
		zap.String("title", payload.Title),
		zap.Int("question_count", len(payload.Quiz)))

	s.persist(ctx, payload)
	s.store(ctx, wikipediaURL, payload)

	return payload, nil
}

// lookupCache returns a previously generated payload for the URL, or nil on
// miss or any cache error. Cache problems never fail a request.
func (s *generationService) lookupCache(ctx context.Context, wikipediaURL string) *domain.QuizPayload {
	if s.cache == nil {
		return nil
	}

	key := cache.QuizPayloadKey(wikipediaURL)
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Quiz payload cache read failed", zap.Error(err), zap.String("key", key))
		}
		return nil
	}

	var payload domain.QuizPayload
	if err := json.Unmarshal([]byte(cached), &payload); err != nil {
		logger.Get().Warn("Discarding undecodable cached quiz payload", zap.Error(err), zap.String("key", key))
		return nil
	}
	return &payload
}

func (s *generationService) store(ctx context.Context, wikipediaURL string, payload *domain.QuizPayload) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Get().Warn("Failed to marshal quiz payload for cache", zap.Error(err))
		return
	}

	key := cache.QuizPayloadKey(wikipediaURL)
	if err := s.cache.Set(ctx, key, string(data), s.cfg.Redis.QuizTTL); err != nil {
		logger.Get().Warn("Quiz payload cache write failed", zap.Error(err), zap.String("key", key))
	}
}

func (s *generationService) persist(ctx context.Context, payload *domain.QuizPayload) {
	if s.repo == nil {
		return
	}

	record := &domain.QuizRecord{
		Title:         payload.Title,
		Summary:       payload.Summary,
		KeyEntities:   payload.KeyEntities,
		Sections:      payload.Sections,
		RelatedTopics: payload.RelatedTopics,
		WikipediaURL:  payload.WikipediaURL,
		Questions:     payload.Quiz,
	}

	if err := s.repo.SaveQuiz(ctx, record); err != nil {
		logger.Get().Error("Failed to persist generated quiz",
			zap.Error(err),
			zap.String("url", payload.WikipediaURL))
	}
}
