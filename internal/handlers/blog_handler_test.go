package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NailSitePro/salon-platform/internal/models"
)

func TestCreatePostEndpoint_DuplicateTitlesGetSuffixedSlugs(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user(t, "editor", models.RoleAdmin)

	body := map[string]any{
		"title":     "Nail Trends",
		"content":   "Lorem ipsum.",
		"published": true,
	}

	slugs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		w := env.request(t, http.MethodPost, "/api/admin/blog/posts", token, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var post models.BlogPost
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		slugs = append(slugs, post.Slug)
	}

	assert.Equal(t, []string{"nail-trends", "nail-trends-1", "nail-trends-2"}, slugs)
}

func TestCreatePostEndpoint_AccentedTitleFoldsSlug(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user(t, "editor", models.RoleAdmin)

	w := env.request(t, http.MethodPost, "/api/admin/blog/posts", token, map[string]any{
		"title":   "Salón París Opening",
		"content": "Lorem ipsum.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post models.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "salon-paris-opening", post.Slug)
}
