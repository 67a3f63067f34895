package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// CreateUser godoc
//
//	@Summary	Register a new user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		user	body		User	true	"user payload, role defaults to reader"
//	@Success	201		{object}	User
//	@Failure	422		{object}	APIError
//	@Router		/users [post]
func (api *APIHandler) CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := User{}
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	err := DecodeCreateOrUpdateUserRequestBody(r, &user)
	if err != nil {
		api.logger.Error("failed to create user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "failed to create the user", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateUserRequestBody(&user)
	if err != nil {
		api.logger.Error("failed to create user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "failed to create the user", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	user, err = api.userService.Add(r.Context(), user)
	if err != nil {
		api.logger.Error("failed to create user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to create the user", user)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to create user", zap.Int64("user.id", user.ID), zap.String("request.id", requestID))
	if err = WriteResponse(w, http.StatusCreated, user); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllUsers godoc
//
//	@Summary	Fetch all registered users
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}	User
//	@Router		/users [get]
func (api *APIHandler) GetAllUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	users, err := api.userService.GetAll(r.Context())
	if err != nil {
		api.logger.Error("failed to get all users", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get all users", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get all users", zap.Int("users.total", len(users)), zap.String("request.id", requestID))
	if err = WriteResponse(w, http.StatusOK, users); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOneUser godoc
//
//	@Summary	Fetch a single user by its id
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"user id"
//	@Success	200	{object}	User
//	@Failure	404	{object}	APIError
//	@Failure	422	{object}	APIError
//	@Router		/users/{id} [get]
func (api *APIHandler) GetOneUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseRecordID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("user id provided is not valid", zap.String("user.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "user id provided is not valid", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	user, err := api.userService.GetOne(r.Context(), id)
	if err == ErrUserNotFound {
		api.logger.Error("user does not exist", zap.Int64("user.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "user does not exist", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get user", zap.Int64("user.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get the user", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get user", zap.Int64("user.id", id), zap.String("request.id", requestID))
	if err = WriteResponse(w, http.StatusOK, user); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateUser godoc
//
//	@Summary	Replace an existing user record
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int		true	"user id"
//	@Param		user	body		User	true	"full replacement payload"
//	@Success	200		{object}	User
//	@Failure	404		{object}	APIError
//	@Failure	422		{object}	APIError
//	@Router		/users/{id} [put]
func (api *APIHandler) UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var user User
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseRecordID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("user id provided is not valid", zap.String("user.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "user id provided is not valid", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = DecodeCreateOrUpdateUserRequestBody(r, &user)
	if err != nil {
		api.logger.Error("failed to update user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "failed to update the user", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateUserRequestBody(&user)
	if err != nil {
		api.logger.Error("failed to update user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "failed to update the user", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	user, err = api.userService.Update(r.Context(), id, user)
	if err == ErrUserNotFound {
		api.logger.Error("user does not exist", zap.Int64("user.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "user does not exist", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to update user", zap.Int64("user.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to update the user", user)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to update user", zap.Int64("user.id", user.ID), zap.String("request.id", requestID))
	if err = WriteResponse(w, http.StatusOK, user); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// DeleteOneUser godoc
//
//	@Summary	Remove a user
//	@Tags		users
//	@Param		id	path	int	true	"user id"
//	@Success	204
//	@Failure	404	{object}	APIError
//	@Failure	422	{object}	APIError
//	@Router		/users/{id} [delete]
func (api *APIHandler) DeleteOneUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseRecordID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("user id provided is not valid", zap.String("user.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusUnprocessableEntity, "user id provided is not valid", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = api.userService.Delete(r.Context(), id)
	if err == ErrUserNotFound {
		api.logger.Error("user does not exist", zap.Int64("user.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "user does not exist", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to delete user", zap.Int64("user.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to delete the user", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to delete user", zap.Int64("user.id", id), zap.String("request.id", requestID))
	w.WriteHeader(http.StatusNoContent)
}
