package store

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// fakeRepo implements both persistence ports in memory, with switches to
// simulate durable-storage failures.
type fakeRepo struct {
	accounts []core.Account
	records  []core.Record

	failLoad bool
	failSave bool

	accountSaves int
	recordSaves  int
}

var errDiskBroken = errors.New("disk broken")

func (f *fakeRepo) LoadAccounts(context.Context) ([]core.Account, error) {
	if f.failLoad {
		return nil, errDiskBroken
	}
	return append([]core.Account(nil), f.accounts...), nil
}

func (f *fakeRepo) SaveAccounts(_ context.Context, accounts []core.Account) error {
	if f.failSave {
		return errDiskBroken
	}
	f.accounts = append([]core.Account(nil), accounts...)
	f.accountSaves++
	return nil
}

func (f *fakeRepo) LoadRecords(context.Context) ([]core.Record, error) {
	if f.failLoad {
		return nil, errDiskBroken
	}
	return append([]core.Record(nil), f.records...), nil
}

func (f *fakeRepo) SaveRecords(_ context.Context, records []core.Record) error {
	if f.failSave {
		return errDiskBroken
	}
	f.records = append([]core.Record(nil), records...)
	f.recordSaves++
	return nil
}

func quietLogger() *applog.Logger {
	return applog.New(applog.Config{
		Component: applog.ComponentApp,
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})
}
