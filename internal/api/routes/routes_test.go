//go:build integration
// +build integration

package routes_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"trove-backend/internal/api/routes"
	"trove-backend/internal/auth"
	"trove-backend/internal/database/models"
	"trove-backend/internal/service"
	"trove-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

const webhookSecret = "route-test-secret"

type RoutesTestSuite struct {
	suite.Suite
	base     *testutils.BaseTestSuite
	http     *testutils.HTTPTestSuite
	apiKey   string
	verifier *auth.SignatureVerifier
	page     *httptest.Server
}

func (suite *RoutesTestSuite) SetupSuite() {
	suite.base = testutils.SetupTestSuite(suite.T())

	cfg := *suite.base.Config
	cfg.GitHubWebhookSecret = webhookSecret
	suite.apiKey = cfg.APIKey
	suite.verifier = auth.NewSignatureVerifier(webhookSecret)

	suite.http = testutils.SetupHTTPTest()
	suite.http.Router = routes.SetupRoutes(suite.base.DB, &cfg, nil)

	suite.page = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>Fetched &amp; parsed</title>`+
			`<meta property="og:description" content="From the page"></head></html>`)
	}))
}

func (suite *RoutesTestSuite) TearDownSuite() {
	suite.page.Close()
	suite.base.TeardownTestSuite()
}

func (suite *RoutesTestSuite) SetupTest() {
	suite.base.CleanTestDB()
}

func (suite *RoutesTestSuite) create(body string) *httptest.ResponseRecorder {
	return suite.http.MakeRawRequest(http.MethodPost, "/resources", []byte(body), testutils.BearerHeaders(suite.apiKey))
}

func (suite *RoutesTestSuite) deliver(event, body string) *httptest.ResponseRecorder {
	return suite.http.MakeRawRequest(http.MethodPost, "/webhooks/github", []byte(body), map[string]string{
		"X-GitHub-Event":      event,
		"X-GitHub-Delivery":   "delivery-1",
		"X-Hub-Signature-256": suite.verifier.Sign([]byte(body)),
	})
}

func (suite *RoutesTestSuite) TestRootIsPublic() {
	w := suite.http.MakeRequest(http.MethodGet, "/", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"name":"trove-api","status":"ok"}`, w.Body.String())
}

func (suite *RoutesTestSuite) TestResourcesRequireAPIKey() {
	w := suite.http.MakeRequest(http.MethodGet, "/resources", nil)
	testutils.AssertErrorResponse(suite.T(), w, http.StatusUnauthorized, "unauthenticated", "missing Authorization")

	w = suite.http.MakeRequestWithHeaders(http.MethodGet, "/resources", nil, map[string]string{"Authorization": "Basic abc"})
	testutils.AssertErrorResponse(suite.T(), w, http.StatusUnauthorized, "unauthenticated", "Bearer")

	w = suite.http.MakeRequestWithHeaders(http.MethodGet, "/resources", nil, testutils.BearerHeaders("wrong"))
	testutils.AssertErrorResponse(suite.T(), w, http.StatusForbidden, "forbidden", "invalid API key")
}

func (suite *RoutesTestSuite) TestCreateBackfillsFromPageThenConflicts() {
	pageURL := suite.page.URL + "/article"

	w := suite.create(`{"url":"` + pageURL + `","source":"extension","tags":["b","a"]}`)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created models.Resource
	testutils.ParseJSONResponse(suite.T(), w, &created)
	suite.Equal("Fetched & parsed", *created.Title)
	suite.Equal("From the page", *created.Description)
	suite.Equal([]string{"b", "a"}, []string(created.Tags))

	w = suite.create(`{"url":"` + pageURL + `","source":"manual","title":"Other"}`)
	testutils.AssertErrorResponse(suite.T(), w, http.StatusConflict, "conflict", "already exists")

	w = suite.http.MakeRequestWithHeaders(http.MethodGet, "/resources/"+created.ID.String(), nil, testutils.BearerHeaders(suite.apiKey))
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RoutesTestSuite) TestCreateValidationCollectsAllErrors() {
	w := suite.create(`{"url":"not a url","source":"fax","tags":[1],"latitude":"north"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	var body struct {
		Details []struct{ Field string } `json:"details"`
	}
	testutils.ParseJSONResponse(suite.T(), w, &body)
	fields := make([]string, 0, len(body.Details))
	for _, d := range body.Details {
		fields = append(fields, d.Field)
	}
	suite.Equal([]string{"url", "source", "tags", "latitude"}, fields)
}

func (suite *RoutesTestSuite) TestPaginationVisitsEveryRowOnce() {
	for i := 0; i < 7; i++ {
		w := suite.create(fmt.Sprintf(`{"url":"https://example.com/%d","source":"manual","title":"t","description":"d"}`, i))
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	seen := map[string]bool{}
	target := "/resources?limit=3"
	pages := 0
	for {
		w := suite.http.MakeRequestWithHeaders(http.MethodGet, target, nil, testutils.BearerHeaders(suite.apiKey))
		suite.Require().Equal(http.StatusOK, w.Code)

		var page service.ResourceListResponse
		testutils.ParseJSONResponse(suite.T(), w, &page)
		pages++
		for _, r := range page.Data {
			suite.False(seen[r.URL], "row repeated: %s", r.URL)
			seen[r.URL] = true
		}
		if !page.HasMore {
			suite.Nil(page.Cursor)
			break
		}
		suite.Require().NotNil(page.Cursor)
		target = "/resources?limit=3&cursor=" + url.QueryEscape(*page.Cursor)
	}

	suite.Len(seen, 7)
	suite.Equal(3, pages)
}

func (suite *RoutesTestSuite) TestStarWebhookFlow() {
	body := `{"action":"created","repository":{"full_name":"a/b","html_url":"https://github.com/a/b","topics":["x","y"]},"sender":{"login":"alice"}}`

	w := suite.deliver("star", body)

	var ack struct {
		OK         bool   `json:"ok"`
		ResourceID string `json:"resource_id"`
	}
	testutils.AssertJSONResponse(suite.T(), w, http.StatusCreated, &ack)
	suite.True(ack.OK)

	var resource models.Resource
	suite.Require().NoError(suite.base.DB.Where("id = ?", ack.ResourceID).Take(&resource).Error)
	suite.Equal(models.SourceGitHubStar, resource.Source)
	suite.Equal([]string{"x", "y"}, []string(resource.Tags))

	var author models.ResourceAuthor
	suite.Require().NoError(suite.base.DB.Where("platform = ? AND username = ?", "github", "alice").Take(&author).Error)
	suite.Equal(1, author.ResourceCount)

	// redelivery of the same star
	w = suite.deliver("star", body)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Require().NoError(suite.base.DB.Where("id = ?", author.ID).Take(&author).Error)
	suite.Equal(1, author.ResourceCount)
}

func (suite *RoutesTestSuite) TestWebhookRejectionsAndIgnores() {
	body := `{"action":"deleted","repository":{"html_url":"https://github.com/a/b"}}`

	w := suite.http.MakeRawRequest(http.MethodPost, "/webhooks/github", []byte(body), map[string]string{"X-GitHub-Event": "star"})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.http.MakeRawRequest(http.MethodPost, "/webhooks/github", []byte(body), map[string]string{
		"X-GitHub-Event":      "star",
		"X-Hub-Signature-256": auth.NewSignatureVerifier("other").Sign([]byte(body)),
	})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.deliver("star", body)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Ignored")

	w = suite.deliver("star", `{"action":`)
	suite.Equal(http.StatusBadRequest, w.Code)

	var count int64
	suite.base.DB.Model(&models.Resource{}).Count(&count)
	suite.Zero(count)
}

func (suite *RoutesTestSuite) TestDeleteKeepsAuthorCount() {
	body := `{"action":"created","repository":{"full_name":"c/d","html_url":"https://github.com/c/d"},"sender":{"login":"bob"}}`
	w := suite.deliver("star", body)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var ack struct {
		ResourceID string `json:"resource_id"`
	}
	testutils.ParseJSONResponse(suite.T(), w, &ack)

	w = suite.http.MakeRequestWithHeaders(http.MethodDelete, "/resources/"+ack.ResourceID, nil, testutils.BearerHeaders(suite.apiKey))
	suite.Equal(http.StatusOK, w.Code)

	w = suite.http.MakeRequestWithHeaders(http.MethodDelete, "/resources/"+ack.ResourceID, nil, testutils.BearerHeaders(suite.apiKey))
	suite.Equal(http.StatusNotFound, w.Code)

	var links int64
	suite.base.DB.Model(&models.ResourceAuthorMap{}).Count(&links)
	suite.Zero(links)

	var author models.ResourceAuthor
	suite.Require().NoError(suite.base.DB.Where("username = ?", "bob").Take(&author).Error)
	suite.Equal(1, author.ResourceCount)
}

func (suite *RoutesTestSuite) TestDirectAndWebhookCreateRace() {
	for i := 0; i < 5; i++ {
		repoURL := fmt.Sprintf("https://github.com/race/r%d", i)
		direct := fmt.Sprintf(`{"url":%q,"source":"manual","title":"t","description":"d"}`, repoURL)
		star := fmt.Sprintf(`{"action":"created","repository":{"full_name":"race/r%d","html_url":%q},"sender":{"login":"racer"}}`, i, repoURL)

		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
			codes = make([]int, 2)
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			codes[0] = suite.create(direct).Code
		}()
		go func() {
			defer wg.Done()
			<-start
			codes[1] = suite.deliver("star", star).Code
		}()
		close(start)
		wg.Wait()

		suite.ElementsMatch([]int{http.StatusCreated, http.StatusConflict}, codes, repoURL)

		var count int64
		suite.base.DB.Model(&models.Resource{}).Where("url = ?", repoURL).Count(&count)
		suite.Equal(int64(1), count, repoURL)
	}
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}
