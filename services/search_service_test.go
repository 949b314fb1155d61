package services

import (
	"testing"

	"pubregistry/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCorpus creates three publications with overlapping authors and
// categories:
//
//	P1  authors {Ana, Ben}   categories {ml}        2021  published
//	P2  authors {Ana}        categories {ml, db}    2022  published
//	P3  authors {Ben, Carl}  categories {db}        2022  draft
func seedCorpus(t *testing.T, env *testEnv, ownerID uint) (p1, p2, p3 *models.Publication) {
	t.Helper()
	p1 = env.submit(t, ownerID, models.SubmitPublicationRequest{
		Title: "Learning Rate Schedules",
		Year:  intPtr(2021),
		Authors: []models.AuthorInput{
			{Name: "Ana Silva", Role: models.RoleLead},
			{Name: "Ben Okafor"},
		},
		Categories: []string{"ml"},
		LinkURL:    "https://example.org/p1",
	})
	p2 = env.submit(t, ownerID, models.SubmitPublicationRequest{
		Title: "Feature Stores in Practice",
		Year:  intPtr(2022),
		Authors: []models.AuthorInput{
			{Name: "Ana Silva", Role: models.RoleLead},
		},
		Categories: []string{"ml", "db"},
		LinkURL:    "https://example.org/p2",
		FilePath:   "/files/p2.pdf",
	})
	p3 = env.submit(t, ownerID, models.SubmitPublicationRequest{
		Title: "Write-Ahead Logging Revisited",
		Year:  intPtr(2022),
		Authors: []models.AuthorInput{
			{Name: "Ben Okafor", Role: models.RoleLead},
			{Name: "Carl Mayer"},
		},
		Categories: []string{"db"},
		LinkURL:    "https://example.org/p3",
	})

	staff := env.createUser(t, "moderator", models.RoleStaff)
	for _, pub := range []*models.Publication{p1, p2} {
		_, err := env.publications.Transition(pub.ID,
			models.TransitionStatusRequest{Status: models.StatusPublished}, staff.ID, models.RoleStaff)
		require.NoError(t, err)
	}
	return p1, p2, p3
}

func matchedIDs(t *testing.T, env *testEnv, params models.PublicationSearchParams) []uint {
	t.Helper()
	ids, err := env.search.MatchedIDs(params)
	require.NoError(t, err)
	return ids
}

func TestAuthorTermsIntersect(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.RoleProfessor)
	p1, p2, p3 := seedCorpus(t, env, owner.ID)

	// Every term must match; "Ana,Ben" only matches the joint paper.
	assert.Equal(t, []uint{p1.ID},
		matchedIDs(t, env, models.PublicationSearchParams{Authors: "Ana,Ben"}))

	assert.Equal(t, []uint{p3.ID},
		matchedIDs(t, env, models.PublicationSearchParams{Authors: "Carl"}))

	assert.ElementsMatch(t, []uint{p1.ID, p2.ID},
		matchedIDs(t, env, models.PublicationSearchParams{Authors: "Ana"}))
}

func TestUnmatchedAuthorTermShortCircuits(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.RoleProfessor)
	seedCorpus(t, env, owner.ID)

	assert.Empty(t, matchedIDs(t, env, models.PublicationSearchParams{Authors: "Ana,Zoe"}))
	assert.Empty(t, matchedIDs(t, env, models.PublicationSearchParams{Authors: "Zoe"}))
}

func TestCategoryTermsIntersect(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.RoleProfessor)
	_, p2, p3 := seedCorpus(t, env, owner.ID)

	assert.Equal(t, []uint{p2.ID},
		matchedIDs(t, env, models.PublicationSearchParams{Categories: "ml,db"}))

	assert.ElementsMatch(t, []uint{p2.ID, p3.ID},
		matchedIDs(t, env, models.PublicationSearchParams{Categories: "db"}))

	// Empty terms in the CSV are dropped, not treated as match-nothing.
	assert.Equal(t, []uint{p2.ID},
		matchedIDs(t, env, models.PublicationSearchParams{Categories: " ml, ,db, "}))
}

func TestDimensionsCombineWithAnd(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.RoleProfessor)
	_, p2, _ := seedCorpus(t, env, owner.ID)

	ids := matchedIDs(t, env, models.PublicationSearchParams{
		Authors:    "Ana",
		Categories: "db",
		Status:     "published",
	})
	assert.Equal(t, []uint{p2.ID}, ids)
}

func TestScalarFilters(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.RoleProfessor)
	p1, p2, p3 := seedCorpus(t, env, owner.ID)

	assert.ElementsMatch(t, []uint{p2.ID, p3.ID},
		matchedIDs(t, env, models.PublicationSearchParams{YearFrom: "2022"}))

	assert.Equal(t, []uint{p1.ID},
		matchedIDs(t, env, models.PublicationSearchParams{YearTo: "2021"}))

	assert.Equal(t, []uint{p2.ID},
		matchedIDs(t, env, models.PublicationSearchParams{HasFile: boolPtr(true)}))

	assert.Equal(t, []uint{p3.ID},
		matchedIDs(t, env, models.PublicationSearchParams{Status: "draft"}))

	// Substring match is case-insensitive across title and link.
	assert.Equal(t, []uint{p1.ID},
		matchedIDs(t, env, models.PublicationSearchParams{Query: "learning rate"}))
	assert.Equal(t, []uint{p3.ID},
		matchedIDs(t, env, models.PublicationSearchParams{Query: "EXAMPLE.ORG/P3"}))
}

func TestMalformedYearBoundIgnored(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.RoleProfessor)
	p1, p2, p3 := seedCorpus(t, env, owner.ID)

	ids := matchedIDs(t, env, models.PublicationSearchParams{YearFrom: "20x2"})
	assert.ElementsMatch(t, []uint{p1.ID, p2.ID, p3.ID}, ids)
}

func TestLeadFilter(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.RoleProfessor)
	p1, p2, p3 := seedCorpus(t, env, owner.ID)

	detail, err := env.publications.Get(p1.ID, owner.ID, models.RoleProfessor, false)
	require.NoError(t, err)
	var anaID uint
	for _, author := range detail.AuthorList {
		if author.Role == models.RoleLead {
			anaID = author.PersonID
		}
	}
	require.NotZero(t, anaID)

	ids := matchedIDs(t, env, models.PublicationSearchParams{LeadPersonID: anaID})
	assert.ElementsMatch(t, []uint{p1.ID, p2.ID}, ids)
	assert.NotContains(t, ids, p3.ID)
}

func TestSearchOrdersByYearDescThenIDDesc(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.RoleProfessor)
	p1, p2, p3 := seedCorpus(t, env, owner.ID)

	result, err := env.search.Search(models.PublicationSearchParams{})
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	assert.Equal(t, p3.ID, result.Rows[0].ID)
	assert.Equal(t, p2.ID, result.Rows[1].ID)
	assert.Equal(t, p1.ID, result.Rows[2].ID)
	assert.Equal(t, int64(3), result.Total)

	// Authors come back in citation order.
	assert.Equal(t, []string{"Ben Okafor", "Carl Mayer"}, result.Rows[0].Authors)
}

func TestSearchPaginationStable(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.RoleProfessor)
	seedCorpus(t, env, owner.ID)

	var seen []uint
	for page := 1; page <= 3; page++ {
		result, err := env.search.Search(models.PublicationSearchParams{Page: page, Limit: 1})
		require.NoError(t, err)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, int64(3), result.Total)
		seen = append(seen, result.Rows[0].ID)
	}

	// No duplicates and no gaps across pages.
	unique := map[uint]bool{}
	for _, id := range seen {
		unique[id] = true
	}
	assert.Len(t, unique, 3)

	beyond, err := env.search.Search(models.PublicationSearchParams{Page: 4, Limit: 1})
	require.NoError(t, err)
	assert.Empty(t, beyond.Rows)
}

func TestPageClamping(t *testing.T) {
	page, limit := clampPage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, limit)

	page, limit = clampPage(-2, 1000)
	assert.Equal(t, 1, page)
	assert.Equal(t, maxPageSize, limit)

	page, limit = clampPage(3, 25)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
}

func TestReportAgreesWithSearch(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.RoleProfessor)
	seedCorpus(t, env, owner.ID)

	params := models.PublicationSearchParams{Categories: "db"}

	result, err := env.search.Search(params)
	require.NoError(t, err)
	report, err := env.reports.Report(params)
	require.NoError(t, err)

	assert.Equal(t, result.Total, report.Totals.All)

	var statusSum int64
	for _, count := range report.Totals.ByStatus {
		statusSum += count
	}
	assert.Equal(t, report.Totals.All, statusSum)
}

func TestReportAggregates(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", models.RoleProfessor)
	seedCorpus(t, env, owner.ID)

	report, err := env.reports.Report(models.PublicationSearchParams{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.Totals.All)
	assert.Equal(t, int64(2), report.Totals.ByStatus[models.StatusPublished])
	assert.Equal(t, int64(1), report.Totals.ByStatus[models.StatusDraft])

	require.Len(t, report.ByYear, 2)
	assert.Equal(t, models.YearCount{Year: 2021, Count: 1}, report.ByYear[0])
	assert.Equal(t, models.YearCount{Year: 2022, Count: 2}, report.ByYear[1])

	require.NotEmpty(t, report.TopAuthors)
	assert.Equal(t, int64(2), report.TopAuthors[0].Count)
}

func TestSplitTerms(t *testing.T) {
	assert.Nil(t, splitTerms(""))
	assert.Equal(t, []string{"a", "b"}, splitTerms(" a , b ,"))
}
