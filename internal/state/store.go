// Package state provides SQLite-backed persistence for plans.
// The planning engine itself never imports this package; it stores the
// immutable plan snapshots the executor returns.
package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/planwright/planwright/pkg/models"
)

// Store wraps an SQLite database holding plans and their tasks.
type Store struct {
	conn *sql.DB
	path string
	mu   sync.Mutex
}

// Open opens the plan database at the given path, creating parent
// directories and the schema as needed. WAL mode is enabled for
// concurrent reads.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{conn: conn, path: path}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// Path returns the path to the database file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			original_task TEXT NOT NULL,
			status TEXT NOT NULL,
			strategy TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
		CREATE TABLE IF NOT EXISTS plan_tasks (
			plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			description TEXT NOT NULL,
			dependencies TEXT,
			status TEXT NOT NULL,
			result TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			subtasks TEXT,
			priority INTEGER NOT NULL DEFAULT 0,
			resources TEXT,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (plan_id, id)
		);
	`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SavePlan writes a plan snapshot transactionally, replacing any
// previous snapshot of the same plan id together with its task rows.
func (s *Store) SavePlan(plan models.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO plans (id, original_task, status, strategy, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			original_task = excluded.original_task,
			status = excluded.status,
			strategy = excluded.strategy,
			updated_at = excluded.updated_at
	`, plan.ID, plan.OriginalTask, string(plan.Status), string(plan.Strategy),
		plan.CreatedAt.UTC(), plan.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert plan: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM plan_tasks WHERE plan_id = ?", plan.ID); err != nil {
		return fmt.Errorf("clear task rows: %w", err)
	}

	for i, task := range plan.Tasks {
		deps, _ := json.Marshal(task.Dependencies)
		subtasks, _ := json.Marshal(task.Subtasks)
		resources, _ := json.Marshal(task.Resources)
		_, err := tx.Exec(`
			INSERT INTO plan_tasks (plan_id, position, id, description, dependencies, status, result, error, subtasks, priority, resources, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, plan.ID, i, task.ID, task.Description, string(deps),
			string(task.Status), task.Result, task.Error,
			string(subtasks), task.Priority, string(resources), task.CreatedAt.UTC())
		if err != nil {
			return fmt.Errorf("insert task %s: %w", task.ID, err)
		}
	}

	return tx.Commit()
}

// GetPlan loads one plan with its tasks in creation order.
func (s *Store) GetPlan(id string) (models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var plan models.Plan
	var status, strategy string
	err := s.conn.QueryRow(`
		SELECT id, original_task, status, strategy, created_at, updated_at
		FROM plans WHERE id = ?
	`, id).Scan(&plan.ID, &plan.OriginalTask, &status, &strategy, &plan.CreatedAt, &plan.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.Plan{}, fmt.Errorf("plan %s not found", id)
	}
	if err != nil {
		return models.Plan{}, fmt.Errorf("query plan: %w", err)
	}
	plan.Status = models.PlanStatus(status)
	plan.Strategy = models.ExecutionStrategy(strategy)

	rows, err := s.conn.Query(`
		SELECT id, description, dependencies, status, result, error, subtasks, priority, resources, created_at
		FROM plan_tasks WHERE plan_id = ? ORDER BY position
	`, id)
	if err != nil {
		return models.Plan{}, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var task models.PlanTask
		var deps, subtasks, resources sql.NullString
		var taskStatus string
		if err := rows.Scan(&task.ID, &task.Description, &deps, &taskStatus,
			&task.Result, &task.Error, &subtasks, &task.Priority, &resources,
			&task.CreatedAt); err != nil {
			return models.Plan{}, fmt.Errorf("scan task: %w", err)
		}
		task.Status = models.TaskStatus(taskStatus)
		if deps.Valid {
			json.Unmarshal([]byte(deps.String), &task.Dependencies)
		}
		if subtasks.Valid {
			json.Unmarshal([]byte(subtasks.String), &task.Subtasks)
		}
		if resources.Valid {
			json.Unmarshal([]byte(resources.String), &task.Resources)
		}
		plan.Tasks = append(plan.Tasks, task)
	}
	if err := rows.Err(); err != nil {
		return models.Plan{}, fmt.Errorf("iterate tasks: %w", err)
	}

	return plan, nil
}

// ListPlans returns plan headers (no tasks), most recently updated first.
func (s *Store) ListPlans() ([]models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.conn.Query(`
		SELECT id, original_task, status, strategy, created_at, updated_at
		FROM plans ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		var plan models.Plan
		var status, strategy string
		if err := rows.Scan(&plan.ID, &plan.OriginalTask, &status, &strategy,
			&plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plan.Status = models.PlanStatus(status)
		plan.Strategy = models.ExecutionStrategy(strategy)
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// LatestPlan returns the most recently updated plan with its tasks.
func (s *Store) LatestPlan() (models.Plan, error) {
	s.mu.Lock()
	var id string
	err := s.conn.QueryRow("SELECT id FROM plans ORDER BY updated_at DESC LIMIT 1").Scan(&id)
	s.mu.Unlock()
	if err == sql.ErrNoRows {
		return models.Plan{}, fmt.Errorf("no plans stored")
	}
	if err != nil {
		return models.Plan{}, fmt.Errorf("query latest plan: %w", err)
	}
	return s.GetPlan(id)
}
