package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Storage uploads benchmark measurements to a libsql results database. It is
// optional: the harness only touches it when a results database name is
// configured.
type Storage struct {
	OrgName   string
	GroupName string
	ApiToken  string
	AuthToken string
}

func (s *Storage) CreateDatabase(name string) error {
	url := fmt.Sprintf("https://api.turso.tech/v1/organizations/%v/databases", s.OrgName)
	req, err := http.NewRequest("POST", url, bytes.NewReader([]byte(fmt.Sprintf(`{"name":"%v","group":"%v"}`, name, s.GroupName))))
	if err != nil {
		return err
	}
	req.Header.Add("Authorization", "Bearer "+s.ApiToken)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("unexpected status code %v: %v", resp.StatusCode, string(body))
	}
	Logger.Infof("created database %v", name)
	return nil
}

func (s *Storage) ConnectDb(name string) (*sql.DB, error) {
	url := fmt.Sprintf("libsql://%v-%v.turso.io?authToken=%v", name, s.OrgName, s.AuthToken)
	return sql.Open("libsql", url)
}

func (s *Storage) DbLink(name string) string {
	return fmt.Sprintf("%v-%v.turso.io", name, s.OrgName)
}

func (s *Storage) InitResultsDb(db *sql.DB, meta map[string]any) error {
	_, err := db.Exec("CREATE TABLE IF NOT EXISTS parameters (name TEXT PRIMARY KEY, value)")
	if err != nil {
		return err
	}
	parameters := make([]any, 0)
	parameters = append(parameters, "time", time.Now().Format("2006-01-02 15:04:05"))
	for key, value := range meta {
		parameters = append(parameters, key, fmt.Sprintf("%v", value))
	}
	placeholders := strings.Join(slices.Repeat([]string{"(?, ?)"}, len(parameters)/2), ", ")
	_, err = db.Exec(
		fmt.Sprintf("INSERT INTO parameters VALUES %v ON CONFLICT DO NOTHING", placeholders),
		parameters...,
	)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS measurements (
		program TEXT,
		dataset TEXT,
		variant TEXT,
		measurement TEXT,
		value,
		PRIMARY KEY (program, dataset, variant, measurement)
	)`)
	if err != nil {
		return err
	}
	Logger.Infof("initialized results database with meta %v", meta)
	return nil
}

func (s *Storage) UploadResults(db *sql.DB, results []CellResult) error {
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	for _, result := range results {
		cell := result.Cell
		if result.Err != nil {
			_, err = tx.Exec(
				"INSERT INTO measurements VALUES (?, ?, ?, ?, ?)",
				cell.Program.Name, cell.Dataset, cell.Variant.String(), "failure", FailureClass(result.Err),
			)
			if err != nil {
				return err
			}
			continue
		}
		_, err = tx.Exec(
			"INSERT INTO measurements VALUES (?, ?, ?, ?, ?)",
			cell.Program.Name, cell.Dataset, cell.Variant.String(), "total_time", result.Elapsed.Seconds(),
		)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			"INSERT INTO measurements VALUES (?, ?, ?, ?, ?)",
			cell.Program.Name, cell.Dataset, cell.Variant.String(), "count", result.Verification,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
