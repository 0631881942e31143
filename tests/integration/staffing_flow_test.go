package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafflow-io/staffing-backend/internal/staffing/cache"
	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/internal/staffing/repository"
	"github.com/stafflow-io/staffing-backend/internal/staffing/service"
	"github.com/stafflow-io/staffing-backend/internal/staffing/validation"
)

// setupTestPool connects to the test PostgreSQL instance.
// Skips the test if TEST_DB_DSN is not set. You can set TEST_DB_DSN
// directly, or use TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER,
// TEST_DB_PASSWORD and TEST_DB_NAME.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	dsn := os.Getenv("TEST_DB_DSN")

	if dsn == "" {
		host := os.Getenv("TEST_DB_HOST")
		port := os.Getenv("TEST_DB_PORT")
		user := os.Getenv("TEST_DB_USER")
		password := os.Getenv("TEST_DB_PASSWORD")
		dbname := os.Getenv("TEST_DB_NAME")

		if host != "" && port != "" && user != "" && dbname != "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				host, port, user, password, dbname)
		} else {
			t.Skip("TEST_DB_DSN or TEST_DB_* environment variables not set, skipping PostgreSQL integration test")
		}
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)

	require.NoError(t, pool.Ping(context.Background()))

	createSchema(t, pool)
	t.Cleanup(pool.Close)
	return pool
}

func createSchema(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()
	for _, stmt := range []string{
		`create table if not exists consultants (
			id text primary key, first_name text not null, last_name text not null,
			email text not null, status text not null,
			created_at timestamptz not null, updated_at timestamptz not null)`,
		`create table if not exists roles (
			id text primary key, name text not null, status text not null,
			created_at timestamptz not null, updated_at timestamptz not null)`,
		`create table if not exists clients (
			id text primary key, name text not null, email text not null, status text not null,
			created_at timestamptz not null, updated_at timestamptz not null)`,
		`create table if not exists projects (
			id text primary key, client_id text not null, name text not null, status text not null,
			created_at timestamptz not null, updated_at timestamptz not null)`,
		`create table if not exists project_teams (
			id text primary key, project_id text not null, name text not null,
			start_date date not null, end_date date not null, status text not null,
			created_at timestamptz not null, updated_at timestamptz not null)`,
		`create table if not exists consultant_assignments (
			id text primary key, consultant_id text not null, team_id text not null,
			role_id text not null, dedication int not null,
			start_date date not null, end_date date not null, status text not null,
			created_at timestamptz not null, updated_at timestamptz not null)`,
	} {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}
}

type services struct {
	consultants *service.ConsultantService
	roles       *service.RoleService
	clients     *service.ClientService
	projects    *service.ProjectService
	teams       *service.TeamService
	assignments *service.AssignmentService
}

func setupServices(t *testing.T, pool *pgxpool.Pool) *services {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	consultantRepo := repository.NewConsultantRepo(pool)
	roleRepo := repository.NewRoleRepo(pool)
	clientRepo := repository.NewClientRepo(pool)
	projectRepo := repository.NewProjectRepo(pool)
	teamRepo := repository.NewTeamRepo(pool)
	assignmentRepo := repository.NewAssignmentRepo(pool)

	names := cache.NewNameCache(rdb, consultantRepo, roleRepo, projectRepo)
	v := validation.New(consultantRepo, teamRepo, roleRepo, nil)

	return &services{
		consultants: service.NewConsultantService(consultantRepo, names, nil),
		roles:       service.NewRoleService(roleRepo, names, nil),
		clients:     service.NewClientService(clientRepo, nil),
		projects:    service.NewProjectService(projectRepo, clientRepo, names, nil),
		teams:       service.NewTeamService(teamRepo, assignmentRepo, projectRepo, v, nil),
		assignments: service.NewAssignmentService(assignmentRepo, v, names, nil),
	}
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(domain.DateLayout)
}

func TestStaffingFlow(t *testing.T) {
	pool := setupTestPool(t)
	svcs := setupServices(t, pool)
	ctx := context.Background()

	consultant, err := svcs.consultants.Create(ctx, &domain.CreateConsultantRequest{
		FirstName: "Integration",
		LastName:  "Tester",
		Email:     fmt.Sprintf("it-%d@example.com", time.Now().UnixNano()),
	})
	require.NoError(t, err)

	role, err := svcs.roles.Create(ctx, &domain.CreateRoleRequest{Name: "Backend Developer"})
	require.NoError(t, err)

	client, err := svcs.clients.Create(ctx, &domain.CreateClientRequest{
		Name:  "Acme",
		Email: "acme@example.com",
	})
	require.NoError(t, err)

	project, err := svcs.projects.Create(ctx, &domain.CreateProjectRequest{
		ClientID: client.ID,
		Name:     "Billing Revamp",
	})
	require.NoError(t, err)

	team, err := svcs.teams.Create(ctx, &domain.CreateTeamRequest{
		ProjectID: project.ID,
		Name:      "Core",
		StartDate: futureDate(1),
		EndDate:   futureDate(180),
	})
	require.NoError(t, err)

	t.Run("one active team per project", func(t *testing.T) {
		_, err := svcs.teams.Create(ctx, &domain.CreateTeamRequest{
			ProjectID: project.ID,
			Name:      "Second",
			StartDate: futureDate(1),
			EndDate:   futureDate(180),
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	created, err := svcs.assignments.Create(ctx, &domain.CreateAssignmentRequest{
		ConsultantID: consultant.ID,
		TeamID:       team.ID,
		RoleID:       role.ID,
		Dedication:   60,
		StartDate:    futureDate(1),
		EndDate:      futureDate(90),
	})
	require.NoError(t, err)
	assert.Equal(t, "Integration Tester", created.ConsultantName)
	assert.Equal(t, "Backend Developer", created.RoleName)
	assert.Equal(t, "Billing Revamp", created.ProjectName)

	t.Run("overlapping dedication above 100 is rejected", func(t *testing.T) {
		_, err := svcs.assignments.Create(ctx, &domain.CreateAssignmentRequest{
			ConsultantID: consultant.ID,
			TeamID:       team.ID,
			RoleID:       role.ID,
			Dedication:   50,
			StartDate:    futureDate(30),
			EndDate:      futureDate(120),
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("reads survive a round trip", func(t *testing.T) {
		got, err := svcs.assignments.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 60, got.Dedication)
		assert.Equal(t, domain.StatusActive, got.Status)
	})

	t.Run("team delete cascades to assignments", func(t *testing.T) {
		_, err := svcs.teams.Delete(ctx, team.ID)
		require.NoError(t, err)

		_, err = svcs.assignments.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAdvisoryLockSerialization(t *testing.T) {
	pool := setupTestPool(t)
	repo := repository.NewAssignmentRepo(pool)
	ctx := context.Background()

	// Two callbacks under the same key must not run concurrently.
	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- repo.WithLock(ctx, "it-lock-key", func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()

	<-entered

	second := make(chan error, 1)
	go func() {
		second <- repo.WithLock(ctx, "it-lock-key", func(ctx context.Context) error {
			return nil
		})
	}()

	select {
	case err := <-second:
		t.Fatalf("second lock holder finished while the first still held the lock: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-done)
	require.NoError(t, <-second)
}
