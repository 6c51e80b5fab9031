//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_HealthAndSeed(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	t.Run("health reports all dependencies up", func(t *testing.T) {
		resp, status, err := env.Get("/health")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)

		var health struct {
			Status   string `json:"status"`
			Database string `json:"database"`
			Ollama   string `json:"ollama"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &health))
		assert.Equal(t, "ok", health.Status)
		assert.Equal(t, "ok", health.Database)
		assert.Equal(t, "ok", health.Ollama)
	})

	t.Run("seed loads the demo menu", func(t *testing.T) {
		resp, status, err := env.Post("/admin/seed", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)

		var seed struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &seed))
		assert.Contains(t, seed.Message, "Seed OK")
	})

	t.Run("second seed is a no-op", func(t *testing.T) {
		resp, status, err := env.Post("/admin/seed", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)

		var seed struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &seed))
		assert.Contains(t, seed.Message, "Ya hay datos")
	})

	t.Run("dishes are listed after seeding", func(t *testing.T) {
		resp, status, err := env.Get("/dishes?limit=50")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)

		var list struct {
			Items []struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"items"`
			HasMore bool `json:"has_more"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		assert.Len(t, list.Items, 10)
		assert.False(t, list.HasMore)
	})
}

func TestE2E_IndexAndChat(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	_, status, err := env.Post("/admin/seed", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)

	t.Run("index embeds all pending chunks", func(t *testing.T) {
		resp, status, err := env.Post("/admin/index", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)

		var result struct {
			Indexed int `json:"indexed"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Greater(t, result.Indexed, 0)
	})

	t.Run("second index pass has nothing to do", func(t *testing.T) {
		resp, status, err := env.Post("/admin/index", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)

		var result struct {
			Indexed int `json:"indexed"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Equal(t, 0, result.Indexed)
	})

	t.Run("on-topic question gets a confident answer with sources", func(t *testing.T) {
		resp, status, err := env.Post("/chat", map[string]interface{}{
			"question": "¿La milanesa napolitana tiene gluten?",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)

		var chat struct {
			Answer     string  `json:"answer"`
			Decision   string  `json:"decision"`
			Confidence float64 `json:"confidence"`
			Sources    []struct {
				ChunkID int64   `json:"chunk_id"`
				Score   float64 `json:"score"`
			} `json:"sources"`
			TraceID int64 `json:"trace_id"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &chat))
		assert.Equal(t, "answer", chat.Decision)
		assert.InDelta(t, 1.0, chat.Confidence, 0.0001)
		assert.NotEmpty(t, chat.Answer)
		assert.NotEmpty(t, chat.Sources)
		assert.Greater(t, chat.TraceID, int64(0))
	})

	t.Run("off-topic question falls back to disclaimer", func(t *testing.T) {
		resp, status, err := env.Post("/chat", map[string]interface{}{
			"question": "¿Cuál es la capital de Mongolia?",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)

		var chat struct {
			Decision   string  `json:"decision"`
			Confidence float64 `json:"confidence"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &chat))
		assert.Equal(t, "disclaimer", chat.Decision)
		assert.Less(t, chat.Confidence, 0.60)
	})

	t.Run("dish-scoped question only retrieves that dish", func(t *testing.T) {
		listResp, _, err := env.Get("/dishes?limit=1")
		require.NoError(t, err)
		var list struct {
			Items []struct {
				ID int64 `json:"id"`
			} `json:"items"`
		}
		require.NoError(t, json.Unmarshal(listResp.Data, &list))
		require.NotEmpty(t, list.Items)

		resp, status, err := env.Post("/chat", map[string]interface{}{
			"question": "¿Qué alérgenos tiene la milanesa?",
			"dish_id":  list.Items[0].ID,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)

		var chat struct {
			Decision string `json:"decision"`
			Sources  []struct {
				ChunkID int64 `json:"chunk_id"`
			} `json:"sources"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &chat))
		assert.NotEmpty(t, chat.Sources)
	})

	t.Run("empty question is rejected", func(t *testing.T) {
		_, status, err := env.Post("/chat", map[string]interface{}{
			"question": "   ",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
