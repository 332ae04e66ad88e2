package commands

import (
	"context"
)

// ImportBooksCommandHandler upserts a catalog batch in one transaction.
type ImportBooksCommandHandler struct {
	uowFactory BookUoWFactory
}

func NewImportBooksCommandHandler(uowFactory BookUoWFactory) ImportBooksCommandHandler {
	return ImportBooksCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of imported books.
func (h *ImportBooksCommandHandler) Handle(ctx context.Context, cmd ImportBooksCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.BookRepository().Upsert(ctx, cmd.Books()); err != nil {
		return 0, err
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(cmd.Books()), nil
}
