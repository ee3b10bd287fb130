// Package drivers provides the built-in driver catalogues.
// Each catalogue maps a driver kind, as named in configuration or a register
// request, to a builder that constructs the driver from its options.
package drivers

import (
	"os"
	"time"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/cache/bigcache"
	"github.com/custodia-labs/zicoder/internal/adapters/driven/cache/codec"
	memorycache "github.com/custodia-labs/zicoder/internal/adapters/driven/cache/memory"
	rediscache "github.com/custodia-labs/zicoder/internal/adapters/driven/cache/redis"
	"github.com/custodia-labs/zicoder/internal/adapters/driven/cache/ristretto"
	anthropicllm "github.com/custodia-labs/zicoder/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/zicoder/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/zicoder/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/zicoder/internal/adapters/driven/mcpclient"
	"github.com/custodia-labs/zicoder/internal/adapters/driven/queue"
	"github.com/custodia-labs/zicoder/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/core/services"
)

// Model driver kinds.
const (
	KindOllama    = string(domain.AIProviderOllama)
	KindOpenAI    = string(domain.AIProviderOpenAI)
	KindAnthropic = string(domain.AIProviderAnthropic)
)

// MCP driver kinds, one per transport.
const (
	KindStdio          = mcpclient.TransportStdio
	KindStreamableHTTP = mcpclient.TransportStreamableHTTP
	KindSSE            = mcpclient.TransportSSE
)

// Cache driver kinds.
const (
	KindRedis     = "redis"
	KindRistretto = "ristretto"
	KindBigcache  = "bigcache"
	KindMemory    = "memory"
)

// Queue driver kinds.
const (
	KindLocal  = "local"
	KindSQLite = "sqlite"
)

// Environment variables consulted when api_key is not configured.
const (
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
)

// Catalogues holds one catalogue per marketplace.
type Catalogues struct {
	Models     *services.Catalogue[driven.ModelDriver]
	MCPServers *services.Catalogue[driven.MCPDriver]
	Cache      *services.Catalogue[driven.CacheDriver]
	Queue      *services.Catalogue[driven.QueueDriver]
}

// Builtin returns catalogues populated with every built-in driver kind.
func Builtin() *Catalogues {
	return &Catalogues{
		Models:     ModelCatalogue(),
		MCPServers: MCPCatalogue(),
		Cache:      CacheCatalogue(),
		Queue:      QueueCatalogue(),
	}
}

// Kinds returns the registered kinds of the given marketplace.
func (c *Catalogues) Kinds(kind domain.MarketplaceKind) []string {
	switch kind {
	case domain.MarketplaceModel:
		return c.Models.Kinds()
	case domain.MarketplaceMCP:
		return c.MCPServers.Kinds()
	case domain.MarketplaceCache:
		return c.Cache.Kinds()
	case domain.MarketplaceQueue:
		return c.Queue.Kinds()
	default:
		return nil
	}
}

// ModelCatalogue returns the model driver catalogue.
func ModelCatalogue() *services.Catalogue[driven.ModelDriver] {
	c := services.NewCatalogue[driven.ModelDriver]()
	c.Register(KindOllama, buildOllama)
	c.Register(KindOpenAI, buildOpenAI)
	c.Register(KindAnthropic, buildAnthropic)
	return c
}

// MCPCatalogue returns the MCP server driver catalogue.
func MCPCatalogue() *services.Catalogue[driven.MCPDriver] {
	c := services.NewCatalogue[driven.MCPDriver]()
	for _, kind := range []string{KindStdio, KindStreamableHTTP, KindSSE} {
		c.Register(kind, mcpBuilder(kind))
	}
	return c
}

// CacheCatalogue returns the cache driver catalogue.
func CacheCatalogue() *services.Catalogue[driven.CacheDriver] {
	c := services.NewCatalogue[driven.CacheDriver]()
	c.Register(KindRedis, buildRedis)
	c.Register(KindRistretto, buildRistretto)
	c.Register(KindBigcache, buildBigcache)
	c.Register(KindMemory, func(map[string]any) (driven.CacheDriver, error) {
		return memorycache.New(), nil
	})
	return c
}

// QueueCatalogue returns the queue driver catalogue.
func QueueCatalogue() *services.Catalogue[driven.QueueDriver] {
	c := services.NewCatalogue[driven.QueueDriver]()
	c.Register(KindLocal, buildLocalQueue)
	c.Register(KindSQLite, buildSQLiteQueue)
	return c
}

// llmOptions holds the options shared by every model driver.
type llmOptions struct {
	apiKey      string
	baseURL     string
	model       string
	system      string
	maxTokens   int
	temperature float64
	rps         float64
	timeout     time.Duration
}

func parseLLM(cfg map[string]any, keyEnv string) (llmOptions, error) {
	r := reader{opts: cfg}
	o := llmOptions{
		apiKey:      r.str("api_key", ""),
		baseURL:     r.str("base_url", ""),
		model:       r.str("model", ""),
		system:      r.str("system", ""),
		maxTokens:   r.int("max_tokens", 0),
		temperature: r.float("temperature", 0),
		rps:         r.float("requests_per_second", 0),
		timeout:     r.duration("timeout", 0),
	}
	if o.apiKey == "" && keyEnv != "" {
		o.apiKey = os.Getenv(keyEnv)
	}
	return o, r.err
}

func buildOllama(cfg map[string]any) (driven.ModelDriver, error) {
	o, err := parseLLM(cfg, "")
	if err != nil {
		return nil, err
	}
	return ollamallm.New(ollamallm.Config{
		BaseURL:           o.baseURL,
		Model:             o.model,
		System:            o.system,
		MaxTokens:         o.maxTokens,
		Temperature:       o.temperature,
		Timeout:           o.timeout,
		RequestsPerSecond: o.rps,
	}), nil
}

func buildOpenAI(cfg map[string]any) (driven.ModelDriver, error) {
	o, err := parseLLM(cfg, EnvOpenAIKey)
	if err != nil {
		return nil, err
	}
	d, err := openaillm.New(openaillm.Config{
		APIKey:            o.apiKey,
		BaseURL:           o.baseURL,
		Model:             o.model,
		System:            o.system,
		MaxTokens:         o.maxTokens,
		Temperature:       o.temperature,
		Timeout:           o.timeout,
		RequestsPerSecond: o.rps,
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func buildAnthropic(cfg map[string]any) (driven.ModelDriver, error) {
	o, err := parseLLM(cfg, EnvAnthropicKey)
	if err != nil {
		return nil, err
	}
	d, err := anthropicllm.New(anthropicllm.Config{
		APIKey:            o.apiKey,
		BaseURL:           o.baseURL,
		Model:             o.model,
		System:            o.system,
		MaxTokens:         o.maxTokens,
		Temperature:       o.temperature,
		Timeout:           o.timeout,
		RequestsPerSecond: o.rps,
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func mcpBuilder(transport string) driven.Builder[driven.MCPDriver] {
	return func(cfg map[string]any) (driven.MCPDriver, error) {
		r := reader{opts: cfg}
		c := mcpclient.Config{
			Transport:      transport,
			Command:        r.str("command", ""),
			Args:           r.strings("args"),
			Env:            envList(r.stringMap("env")),
			URL:            r.str("url", ""),
			Headers:        r.stringMap("headers"),
			ConnectRetries: r.int("connect_retries", 0),
			RetryBackoff:   r.duration("retry_backoff", 0),
		}
		if r.err != nil {
			return nil, r.err
		}
		d, err := mcpclient.New(c)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

func codecOption(r *reader) codec.Codec {
	name := r.str("codec", "")
	if r.err != nil {
		return nil
	}
	c, err := codec.ByName(name)
	if err != nil {
		r.err = err
		return nil
	}
	return c
}

func buildRedis(cfg map[string]any) (driven.CacheDriver, error) {
	r := reader{opts: cfg}
	c := rediscache.Config{
		Addr:           r.str("addr", ""),
		Username:       r.str("username", ""),
		Password:       r.str("password", ""),
		DB:             r.int("db", 0),
		Prefix:         r.str("prefix", ""),
		ConnectRetries: r.int("connect_retries", 0),
		RetryBackoff:   r.duration("retry_backoff", 0),
	}
	c.Codec = codecOption(&r)
	if r.err != nil {
		return nil, r.err
	}
	return rediscache.New(c), nil
}

func buildRistretto(cfg map[string]any) (driven.CacheDriver, error) {
	r := reader{opts: cfg}
	c := ristretto.Config{
		NumCounters: int64(r.int("num_counters", 0)),
		MaxCost:     int64(r.int("max_cost", 0)),
		BufferItems: int64(r.int("buffer_items", 0)),
	}
	c.Codec = codecOption(&r)
	if r.err != nil {
		return nil, r.err
	}
	d, err := ristretto.New(c)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func buildBigcache(cfg map[string]any) (driven.CacheDriver, error) {
	r := reader{opts: cfg}
	c := bigcache.Config{
		LifeWindow:         r.duration("life_window", 0),
		CleanWindow:        r.duration("clean_window", 0),
		MaxEntriesInWindow: r.int("max_entries_in_window", 0),
		MaxEntrySize:       r.int("max_entry_size", 0),
		HardMaxCacheSizeMB: r.int("hard_max_cache_size_mb", 0),
	}
	c.Codec = codecOption(&r)
	if r.err != nil {
		return nil, r.err
	}
	return bigcache.New(c), nil
}

func queueConfig(r *reader) queue.Config {
	return queue.Config{
		Workers:     r.int("workers", 0),
		BufferSize:  r.int("buffer_size", 0),
		TaskTimeout: r.duration("task_timeout", 0),
	}
}

func buildLocalQueue(cfg map[string]any) (driven.QueueDriver, error) {
	r := reader{opts: cfg}
	c := queueConfig(&r)
	if r.err != nil {
		return nil, r.err
	}
	return queue.New(c), nil
}

func buildSQLiteQueue(cfg map[string]any) (driven.QueueDriver, error) {
	r := reader{opts: cfg}
	c := queueConfig(&r)
	dataDir := r.str("data_dir", "")
	if r.err != nil {
		return nil, r.err
	}
	c.OpenStore = func() (driven.TaskStore, error) {
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return queue.New(c), nil
}

// reader records the first option error so builders can read every field
// before checking.
type reader struct {
	opts Options
	err  error
}

func (r *reader) str(key, def string) string {
	if r.err != nil {
		return def
	}
	v, err := r.opts.String(key, def)
	r.err = err
	return v
}

func (r *reader) int(key string, def int) int {
	if r.err != nil {
		return def
	}
	v, err := r.opts.Int(key, def)
	r.err = err
	return v
}

func (r *reader) float(key string, def float64) float64 {
	if r.err != nil {
		return def
	}
	v, err := r.opts.Float(key, def)
	r.err = err
	return v
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	if r.err != nil {
		return def
	}
	v, err := r.opts.Duration(key, def)
	r.err = err
	return v
}

func (r *reader) strings(key string) []string {
	if r.err != nil {
		return nil
	}
	v, err := r.opts.Strings(key)
	r.err = err
	return v
}

func (r *reader) stringMap(key string) map[string]string {
	if r.err != nil {
		return nil
	}
	v, err := r.opts.StringMap(key)
	r.err = err
	return v
}
