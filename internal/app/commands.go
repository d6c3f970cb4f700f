package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"catalogadmin/internal/types"
)

const recordRequestTimeout = 10 * time.Second

func fetchRecordCmd(ctx context.Context, api CatalogAPI, res types.Resource, id types.ID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, recordRequestTimeout)
		defer cancel()
		record, err := api.GetRecord(ctx, res, id)
		return recordLoadedMsg{resource: res, id: id, record: record, err: err}
	}
}

func saveRecordCmd(ctx context.Context, api CatalogAPI, res types.Resource, id types.ID, record any) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, recordRequestTimeout)
		defer cancel()
		saved, err := api.SaveRecord(ctx, res, id, record)
		return recordSavedMsg{resource: res, created: id.IsZero(), record: saved, err: err}
	}
}

func deleteRecordCmd(ctx context.Context, api CatalogAPI, res types.Resource, id types.ID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, recordRequestTimeout)
		defer cancel()
		err := api.DeleteRecord(ctx, res, id)
		return recordDeletedMsg{resource: res, id: id, err: err}
	}
}
