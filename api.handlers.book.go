package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// CreateBook godoc
//
//	@Summary	Add a new book to the shelf
//	@Tags		books
//	@Accept		json
//	@Produce	json
//	@Param		book	body		Book	true	"book payload, id is assigned by the store"
//	@Success	201		{object}	Book
//	@Failure	422		{object}	APIError
//	@Router		/books [post]
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	book := Book{}
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	err := DecodeCreateOrUpdateBookRequestBody(r, &book)
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "failed to create the book", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateBookRequestBody(&book)
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "failed to create the book", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err = api.bookService.Add(r.Context(), book)
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to create the book", book)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to create book", zap.Int64("book.id", book.ID), zap.String("request.id", requestID))
	if err = WriteResponse(w, http.StatusCreated, book); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllBooks godoc
//
//	@Summary	Fetch all books from the shelf
//	@Tags		books
//	@Produce	json
//	@Success	200	{array}	Book
//	@Router		/books [get]
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	books, err := api.bookService.GetAll(r.Context())
	if err != nil {
		api.logger.Error("failed to get all books", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get all books", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get all books", zap.Int("books.total", len(books)), zap.String("request.id", requestID))
	if err = WriteResponse(w, http.StatusOK, books); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOneBook godoc
//
//	@Summary	Fetch a single book by its id
//	@Tags		books
//	@Produce	json
//	@Param		id	path		int	true	"book id"
//	@Success	200	{object}	Book
//	@Failure	404	{object}	APIError
//	@Failure	422	{object}	APIError
//	@Router		/books/{id} [get]
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseRecordID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "book id provided is not valid", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	book, err := api.bookService.GetOne(r.Context(), id)
	if err == ErrBookNotFound {
		api.logger.Error("book does not exist", zap.Int64("book.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "book does not exist", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get book", zap.Int64("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get the book", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get book", zap.Int64("book.id", id), zap.String("request.id", requestID))
	if err = WriteResponse(w, http.StatusOK, book); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateBook godoc
//
//	@Summary	Replace an existing book record
//	@Tags		books
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int		true	"book id"
//	@Param		book	body		Book	true	"full replacement payload"
//	@Success	200		{object}	Book
//	@Failure	404		{object}	APIError
//	@Failure	422		{object}	APIError
//	@Router		/books/{id} [put]
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var book Book
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseRecordID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "book id provided is not valid", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = DecodeCreateOrUpdateBookRequestBody(r, &book)
	if err != nil {
		api.logger.Error("failed to update book", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "failed to update the book", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateBookRequestBody(&book)
	if err != nil {
		api.logger.Error("failed to update book", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "failed to update the book", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err = api.bookService.Update(r.Context(), id, book)
	if err == ErrBookNotFound {
		api.logger.Error("book does not exist", zap.Int64("book.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "book does not exist", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to update book", zap.Int64("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to update the book", book)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to update book", zap.Int64("book.id", book.ID), zap.String("request.id", requestID))
	if err = WriteResponse(w, http.StatusOK, book); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// DeleteOneBook godoc
//
//	@Summary	Remove a book from the shelf
//	@Tags		books
//	@Param		id	path	int	true	"book id"
//	@Success	204
//	@Failure	404	{object}	APIError
//	@Failure	422	{object}	APIError
//	@Router		/books/{id} [delete]
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseRecordID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "book id provided is not valid", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = api.bookService.Delete(r.Context(), id)
	if err == ErrBookNotFound {
		api.logger.Error("book does not exist", zap.Int64("book.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "book does not exist", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to delete book", zap.Int64("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to delete the book", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to delete book", zap.Int64("book.id", id), zap.String("request.id", requestID))
	w.WriteHeader(http.StatusNoContent)
}
