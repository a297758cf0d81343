package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wellnest/models"
	"wellnest/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProviderRepo struct {
	provider        *models.Provider
	projectionCalls int
}

func (r *fakeProviderRepo) GetByID(id string) (*models.Provider, error) {
	return r.GetByIDWithProjection(id, nil)
}

func (r *fakeProviderRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Provider, error) {
	r.projectionCalls++
	if r.provider == nil || r.provider.ID != id {
		return nil, mongo.ErrNoDocuments
	}
	return r.provider, nil
}

func (r *fakeProviderRepo) Create(*models.Provider) error                        { return nil }
func (r *fakeProviderRepo) Update(*models.Provider) error                        { return nil }
func (r *fakeProviderRepo) Delete(string) error                                  { return nil }
func (r *fakeProviderRepo) UpdateAvailability(string, models.Availability) error { return nil }

type fakeClientRepo struct {
	client *models.Client
}

func (r *fakeClientRepo) GetByID(id string) (*models.Client, error) {
	return r.GetByIDWithProjection(id, nil)
}

func (r *fakeClientRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Client, error) {
	if r.client == nil || r.client.ID != id {
		return nil, mongo.ErrNoDocuments
	}
	return r.client, nil
}

func setupAuthCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	utils.AuthCacheClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { utils.AuthCacheClient = nil })
}

func authedContext(t *testing.T, token string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)
	return c, w
}

func TestClientTokenDoesNotSatisfyProviderAuth(t *testing.T) {
	setupAuthCache(t)
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken("acct-1", "acct@example.com", time.Hour)
	require.NoError(t, err)
	clients := &fakeClientRepo{client: &models.Client{ID: "acct-1", TokenHash: utils.HashToken(token)}}

	// Validate once as a client so the token lands in the auth cache.
	c, _ := authedContext(t, token)
	JWTAuthClientMiddleware(clients)(c)
	require.False(t, c.IsAborted())
	clientID, _ := c.Get("clientID")
	require.Equal(t, "acct-1", clientID)

	// The cached client entry must not let the same token through the
	// provider middleware without a provider token-hash check.
	providers := &fakeProviderRepo{}
	c2, w2 := authedContext(t, token)
	JWTAuthProviderMiddleware(providers)(c2)

	assert.True(t, c2.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, 1, providers.projectionCalls)
	_, exists := c2.Get("providerID")
	assert.False(t, exists)
}

func TestProviderAuthCachesValidation(t *testing.T) {
	setupAuthCache(t)
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken("prov-1", "prov@example.com", time.Hour)
	require.NoError(t, err)
	providers := &fakeProviderRepo{provider: &models.Provider{ID: "prov-1", TokenHash: utils.HashToken(token)}}

	c, _ := authedContext(t, token)
	JWTAuthProviderMiddleware(providers)(c)
	require.False(t, c.IsAborted())
	require.Equal(t, 1, providers.projectionCalls)

	// Second request is served from the cache without a repo round trip.
	c2, _ := authedContext(t, token)
	JWTAuthProviderMiddleware(providers)(c2)
	require.False(t, c2.IsAborted())
	assert.Equal(t, 1, providers.projectionCalls)
	providerID, _ := c2.Get("providerID")
	assert.Equal(t, "prov-1", providerID)
}

func TestProviderAuthRejectsMismatchedTokenHash(t *testing.T) {
	setupAuthCache(t)
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken("prov-1", "prov@example.com", time.Hour)
	require.NoError(t, err)
	providers := &fakeProviderRepo{provider: &models.Provider{ID: "prov-1", TokenHash: "stale-hash"}}

	c, w := authedContext(t, token)
	JWTAuthProviderMiddleware(providers)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerTokenRequired(t *testing.T) {
	setupAuthCache(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	JWTAuthClientMiddleware(&fakeClientRepo{})(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
