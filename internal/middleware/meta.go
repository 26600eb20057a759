package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const metaContextKey = "response_meta"

// Keys written into the envelope meta block.
const (
	MetaCacheHit       = "cache_hit"
	MetaProcessingTime = "processing_time_ms"
)

// ResponseMeta is the meta block attached to API envelopes.
type ResponseMeta map[string]interface{}

type requestMeta struct {
	start  time.Time
	values ResponseMeta
}

// WithResponseMeta starts the processing clock for API requests.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(metaContextKey, &requestMeta{start: time.Now(), values: ResponseMeta{}})
		c.Next()
	}
}

// SetCacheHit records whether the catalog behind this response came from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	trackMeta(c).values[MetaCacheHit] = hit
}

// Meta returns a copy of the recorded values plus the elapsed processing time,
// or nil when nothing was recorded for the request.
func Meta(c *gin.Context) ResponseMeta {
	rm := lookupMeta(c)
	if rm == nil {
		return nil
	}
	out := make(ResponseMeta, len(rm.values)+1)
	for k, v := range rm.values {
		out[k] = v
	}
	out[MetaProcessingTime] = time.Since(rm.start).Milliseconds()
	return out
}

func lookupMeta(c *gin.Context) *requestMeta {
	if c == nil {
		return nil
	}
	value, ok := c.Get(metaContextKey)
	if !ok {
		return nil
	}
	rm, _ := value.(*requestMeta)
	return rm
}

// trackMeta lazily attaches a meta record for handlers mounted without WithResponseMeta.
func trackMeta(c *gin.Context) *requestMeta {
	if rm := lookupMeta(c); rm != nil {
		return rm
	}
	rm := &requestMeta{start: time.Now(), values: ResponseMeta{}}
	c.Set(metaContextKey, rm)
	return rm
}
