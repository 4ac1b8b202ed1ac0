package handlers

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

func TestDonationsCSV(t *testing.T) {
	phone := "555-0101"
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	records := []domain.DonationRecord{
		{
			Donation: domain.Donation{
				ID:             7,
				BloodGroup:     "O+",
				UnitsDonated:   2,
				DonationDate:   date,
				Status:         domain.DonationStatusCompleted,
				CreditsAwarded: 50,
			},
			DonorName:    "Jamie Doe",
			DonorEmail:   "jamie@example.com",
			DonorPhone:   &phone,
			HospitalName: "City Hospital",
		},
		{
			Donation: domain.Donation{
				ID:           8,
				BloodGroup:   "AB-",
				UnitsDonated: 1,
				DonationDate: date,
				Status:       domain.DonationStatusPending,
			},
			DonorName:    "Comma, Donor",
			DonorEmail:   "comma@example.com",
			HospitalName: "County Clinic",
		},
	}

	payload, err := donationsCSV(records)
	if err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	wantHeader := []string{
		"ID", "Donor Name", "Donor Email", "Donor Phone", "Hospital Name",
		"Blood Group", "Units Donated", "Donation Date", "Status", "Credits Awarded",
	}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Fatalf("header column %d: got %q, want %q", i, rows[0][i], col)
		}
	}

	first := rows[1]
	if first[0] != "7" || first[3] != "555-0101" || first[7] != "2026-03-14" || first[8] != "completed" || first[9] != "50" {
		t.Fatalf("unexpected first row %v", first)
	}

	// Missing phone renders empty; commas in names stay one field.
	second := rows[2]
	if second[1] != "Comma, Donor" {
		t.Fatalf("comma in donor name not preserved: %v", second)
	}
	if second[3] != "" {
		t.Fatalf("expected empty phone, got %q", second[3])
	}
}

func TestDonationsCSVEmpty(t *testing.T) {
	payload, err := donationsCSV(nil)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
