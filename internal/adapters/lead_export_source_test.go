package adapters

import (
	"context"
	"testing"
	"time"

	"crm_backend/internal/events"
	"crm_backend/internal/leads/conversion"
	"crm_backend/internal/leads/domain"
	"crm_backend/internal/leads/memstore"
	leadrepo "crm_backend/internal/leads/repository"
	leadsvc "crm_backend/internal/leads/service"
	"crm_backend/internal/leads/transport"
	"crm_backend/platform/logger"

	"github.com/google/uuid"
)

func TestToExportRowFlattensOptionalFields(t *testing.T) {
	phone := "+12024561111"
	contacted := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lead := leadrepo.Lead{
		ID:              uuid.MustParse("6a1f7c5e-3f7a-4d4b-9d59-1b6f0f5a8c11"),
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Phone:           &phone,
		Source:          domain.SourceWebForm,
		Status:          domain.StatusContacted,
		Score:           40,
		LastContactedAt: &contacted,
	}

	row := toExportRow(lead)

	if row.ID != "6a1f7c5e-3f7a-4d4b-9d59-1b6f0f5a8c11" {
		t.Fatalf("unexpected id %q", row.ID)
	}
	if row.Phone != phone || row.CompanyName != "" || row.JobTitle != "" {
		t.Fatalf("unexpected optional fields: %+v", row)
	}
	if row.Source != "WebForm" || row.Status != "Contacted" {
		t.Fatalf("expected titled tokens, got %q and %q", row.Source, row.Status)
	}
	if row.LastContactedAt == nil || !row.LastContactedAt.Equal(contacted) {
		t.Fatal("expected last contacted timestamp to carry over")
	}
}

func TestLeadExportSourceSkipsDeletedLeads(t *testing.T) {
	store := memstore.New()
	svc := leadsvc.New(leadsvc.Deps{
		UoW:       store,
		Leads:     store,
		Timeline:  store,
		Converter: conversion.New(store, store, store, store, store),
		Bus:       events.NewInMemoryBus(logger.Nop()),
		Log:       logger.Nop(),
	})
	ctx := context.Background()

	kept, err := svc.Create(ctx, transport.CreateLeadRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gone, err := svc.Create(ctx, transport.CreateLeadRequest{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, gone.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	rows, err := NewLeadExportSource(svc).ExportRows(ctx)
	if err != nil {
		t.Fatalf("export rows: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != kept.ID.String() {
		t.Fatalf("expected only the live lead, got %+v", rows)
	}
	if rows[0].Source != "ManualEntry" || rows[0].Score != 10 {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}
