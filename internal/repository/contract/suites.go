package contract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maxviazov/dashboard-service/internal/model"
	"github.com/maxviazov/dashboard-service/internal/repository"
)

// SeedActivities inserts rows verbatim, explicit ids and timestamps included.
type SeedActivities func(ctx context.Context, rows []model.Activity) error

// SeedCounts inserts the given number of rows into users, posts, comments and sessions.
type SeedCounts func(ctx context.Context, users, posts, comments, sessions int) error

type ActivityFactory func(t *testing.T) (repo repository.ActivityRepository, seed SeedActivities, cleanup func())

type StatsFactory func(t *testing.T) (repo repository.StatsRepository, seed SeedCounts, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

var epoch = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

// linear returns ids 1..n with created_at strictly increasing with id.
func linear(n int) []model.Activity {
	out := make([]model.Activity, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.Activity{
			ID:        int64(i),
			UserID:    int64(i%3 + 1),
			Action:    "login",
			CreatedAt: epoch.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

// clustered returns ids 1..n where every three consecutive ids share created_at.
func clustered(n int) []model.Activity {
	out := make([]model.Activity, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.Activity{
			ID:        int64(i),
			UserID:    int64(i),
			Action:    "post.created",
			CreatedAt: epoch.Add(time.Duration((i-1)/3) * time.Second),
		})
	}
	return out
}

func idsOf(items []model.Activity) []int64 {
	out := make([]int64, 0, len(items))
	for _, a := range items {
		out = append(out, a.ID)
	}
	return out
}

// requireDescending asserts (created_at DESC, id DESC) between every adjacent pair.
func requireDescending(t *testing.T, items []model.Activity) {
	t.Helper()
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		ordered := prev.CreatedAt.After(cur.CreatedAt) ||
			(prev.CreatedAt.Equal(cur.CreatedAt) && prev.ID > cur.ID)
		require.Truef(t, ordered, "rows %d and %d out of order", prev.ID, cur.ID)
	}
}

func RunActivityRepositoryContract(t *testing.T, makeRepo ActivityFactory) {
	t.Helper()

	t.Run("five_rows_scenario", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		require.NoError(t, seed(ctx, linear(5)))

		cases := []struct {
			offset int
			want   []int64
		}{
			{0, []int64{5, 4}},
			{2, []int64{3, 2}},
			{4, []int64{1}},
			{5, []int64{}},
		}
		for _, tc := range cases {
			got, err := repo.Recent(ctx, repository.Page{Limit: 2, Offset: tc.offset})
			require.NoError(t, err, "offset %d", tc.offset)
			require.Equal(t, tc.want, idsOf(got), "offset %d", tc.offset)
		}
	})

	t.Run("created_at_tie_broken_by_id", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		require.NoError(t, seed(ctx, []model.Activity{
			{ID: 7, UserID: 1, Action: "first", CreatedAt: epoch},
			{ID: 8, UserID: 1, Action: "second", CreatedAt: epoch},
		}))

		first, err := repo.Recent(ctx, repository.Page{Limit: 1, Offset: 0})
		require.NoError(t, err)
		require.Equal(t, []int64{8}, idsOf(first))

		second, err := repo.Recent(ctx, repository.Page{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Equal(t, []int64{7}, idsOf(second))
	})

	t.Run("keyset_matches_offset_scan", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		const n = 23
		require.NoError(t, seed(ctx, clustered(n)))

		for _, limit := range []int{1, 2, 3, 5, 7, 100} {
			for offset := 0; offset <= n+2; offset++ {
				p := repository.Page{Limit: limit, Offset: offset}
				keyset, err := repo.Recent(ctx, p)
				require.NoError(t, err)
				scan, err := repo.RecentByOffset(ctx, p)
				require.NoError(t, err)
				require.Equal(t, idsOf(scan), idsOf(keyset), "limit=%d offset=%d", limit, offset)
				require.LessOrEqual(t, len(keyset), limit)
				requireDescending(t, keyset)
			}
		}
	})

	t.Run("pages_reconstruct_full_sequence", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		require.NoError(t, seed(ctx, clustered(17)))

		full, err := repo.RecentByOffset(ctx, repository.Page{Limit: repository.MaxPageLimit, Offset: 0})
		require.NoError(t, err)
		require.Len(t, full, 17)

		const limit = 4
		var joined []model.Activity
		for page := 0; ; page++ {
			got, err := repo.Recent(ctx, repository.Page{Limit: limit, Offset: page * limit})
			require.NoError(t, err)
			if len(got) == 0 {
				break
			}
			joined = append(joined, got...)
		}
		require.Equal(t, idsOf(full), idsOf(joined), "no gaps or duplicates across pages")
		requireDescending(t, joined)
	})

	t.Run("offset_beyond_end_is_empty", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		got, err := repo.Recent(ctx, repository.Page{Limit: 10, Offset: 3})
		require.NoError(t, err, "empty table")
		require.NotNil(t, got)
		require.Empty(t, got)

		require.NoError(t, seed(ctx, linear(5)))
		for _, offset := range []int{5, 6, 50} {
			got, err := repo.Recent(ctx, repository.Page{Limit: 100, Offset: offset})
			require.NoError(t, err)
			require.Empty(t, got, "offset %d", offset)
		}
	})

	t.Run("limit_bounds_page_length", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		require.NoError(t, seed(ctx, linear(120)))

		one, err := repo.Recent(ctx, repository.Page{Limit: 1, Offset: 10})
		require.NoError(t, err)
		require.Equal(t, []int64{110}, idsOf(one))

		hundred, err := repo.Recent(ctx, repository.Page{Limit: repository.MaxPageLimit, Offset: 10})
		require.NoError(t, err)
		require.Len(t, hundred, 100)
		require.Equal(t, int64(110), hundred[0].ID)
		require.Equal(t, int64(11), hundred[99].ID)
	})

	t.Run("cursor_continues_where_offset_would", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		require.NoError(t, seed(ctx, clustered(11)))

		first, err := repo.Recent(ctx, repository.Page{Limit: 4, Offset: 0})
		require.NoError(t, err)
		require.Len(t, first, 4)

		next, err := repo.RecentAfter(ctx, repository.KeyOf(first[len(first)-1]), 4)
		require.NoError(t, err)
		byOffset, err := repo.Recent(ctx, repository.Page{Limit: 4, Offset: 4})
		require.NoError(t, err)
		require.Equal(t, idsOf(byOffset), idsOf(next))
	})

	t.Run("rows_are_mapped_field_by_field", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		at := time.Date(2024, 6, 1, 8, 30, 15, 250000000, time.UTC)
		require.NoError(t, seed(ctx, []model.Activity{{ID: 31, UserID: 9, Action: "comment.deleted", CreatedAt: at}}))

		got, err := repo.Recent(ctx, repository.Page{Limit: 5})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, int64(31), got[0].ID)
		require.Equal(t, int64(9), got[0].UserID)
		require.Equal(t, "comment.deleted", got[0].Action)
		require.True(t, at.Equal(got[0].CreatedAt))
	})
}

func RunStatsRepositoryContract(t *testing.T, makeRepo StatsFactory) {
	t.Helper()

	t.Run("empty_tables_count_zero", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		got, err := repo.Counts(context.Background())
		require.NoError(t, err)
		require.Equal(t, model.DashboardStats{}, got)
	})

	t.Run("counts_each_table", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		require.NoError(t, seed(ctx, 3, 5, 7, 2))

		got, err := repo.Counts(ctx)
		require.NoError(t, err)
		require.Equal(t, model.DashboardStats{Users: 3, Posts: 5, Comments: 7, Sessions: 2}, got)
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()

	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		require.NoError(t, p.Ping(ctx))
	})
}
