package config

import (
	"os"
	"strconv"
	"time"
)

// App carries the policy knobs of the intake pipeline. Everything comes from
// the environment with conservative defaults.
type App struct {
	Port string

	SkillCap       int   // max entries per profile per skill kind
	MaxUploadBytes int64 // per-document ceiling

	GCSBucket string

	VertexProjectID string
	VertexLocation  string
	VertexModel     string

	AnalysisTimeout  time.Duration
	AnalysisCacheTTL time.Duration
	SignedURLTTL     time.Duration
}

func LoadApp() App {
	return App{
		Port:             envString("PORT", "8080"),
		SkillCap:         envInt("SKILL_CAP", 5),
		MaxUploadBytes:   int64(envInt("MAX_UPLOAD_BYTES", 10<<20)),
		GCSBucket:        os.Getenv("GCS_BUCKET"),
		VertexProjectID:  os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation:   envString("VERTEX_LOCATION", "us-central1"),
		VertexModel:      os.Getenv("VERTEX_MODEL"),
		AnalysisTimeout:  envSeconds("ANALYSIS_TIMEOUT_SECONDS", 60),
		AnalysisCacheTTL: envSeconds("ANALYSIS_CACHE_TTL_SECONDS", 300),
		SignedURLTTL:     envSeconds("SIGNED_URL_TTL_SECONDS", 900),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envSeconds(key string, def int) time.Duration {
	return time.Duration(envInt(key, def)) * time.Second
}
