package govtrack

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// fetch returns the raw body for signature. Online it GETs liveURL and
// records the body if the cache is recording; offline it replays from the
// cache, where "" means nothing is left to replay.
func (c *Client) fetch(ctx context.Context, resource, signature, liveURL string) (string, error) {
	log := c.logger.With().
		Str("request_id", uuid.NewString()).
		Str("resource", resource).
		Str("signature", signature).
		Logger()

	if !c.Online() {
		body := c.cache.Lookup(signature)
		c.metrics.RecordFetch(resource, modeOffline, 0)
		c.metrics.RecordReplay(body != "")
		log.Debug().Str("mode", modeOffline).Bool("hit", body != "").Msg("replayed")
		return body, nil
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, liveURL, nil)
	if err != nil {
		return "", newError(KindQuery, err, "could not build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("request failed")
		return "", newError(KindQuery, err, "make sure you entered a valid query")
	}
	defer resp.Body.Close()

	duration := time.Since(start)
	c.metrics.RecordFetch(resource, modeOnline, duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Warn().Int("status", resp.StatusCode).Dur("duration", duration).Msg("unexpected status")
		return "", newError(KindQuery, nil, "make sure you entered a valid query: GET %s: %s", resource, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(KindQuery, err, "could not read response")
	}
	body := string(b)

	if c.cache.Recording() {
		c.cache.Append(signature, body)
		c.metrics.RecordAppend(resource)
	}
	log.Debug().Str("mode", modeOnline).Int("status", resp.StatusCode).Dur("duration", duration).Msg("fetched")
	return body, nil
}
