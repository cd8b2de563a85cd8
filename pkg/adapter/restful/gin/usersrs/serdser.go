package usersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/authmw"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealer-web/pkg/core/model"
)

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileReq struct {
	Name     *string `json:"name" binding:"omitempty"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=1"`
}

type sessionResp struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (rs *resource) DserRegisterReq(c *gin.Context) *registerReq {
	req := &registerReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserLoginReq(c *gin.Context) *loginReq {
	req := &loginReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserUpdateProfileReq(
	c *gin.Context,
) *updateProfileReq {
	req := &updateProfileReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

// DserActingUser returns a copy of the acting user as attached by the
// authentication middleware, so handlers may redact its fields freely.
func (rs *resource) DserActingUser(c *gin.Context) *model.User {
	u := authmw.User(c)
	if u == nil {
		serdser.Err(
			c, http.StatusUnauthorized,
			"authorization token is required",
		)
		return nil
	}
	uu := *u
	return &uu
}

func (rs *resource) DserUserID(c *gin.Context) (uuid.UUID, bool) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		serdser.Err(
			c, http.StatusBadRequest,
			"path param uid is not a valid UUID",
		)
		return uuid.Nil, false
	}
	return uid, true
}
