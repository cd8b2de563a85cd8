package requestsrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/authmw"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/momeni/dealer-web/pkg/core/usecase/requestsuc"
)

type rawCreateRequestReq struct {
	VehicleID string     `json:"vehicleId" binding:"required,uuid"`
	Type      string     `json:"requestType" binding:"required,oneof=purchase rental information"`
	StartDate *time.Time `json:"startDate" binding:"omitempty"`
	EndDate   *time.Time `json:"endDate" binding:"omitempty"`
	Message   string     `json:"message"`
}

type rawUpdateStatusReq struct {
	Status string `json:"status" binding:"required,oneof=pending accepted rejected"`
}

func (rs *resource) DserActingUser(c *gin.Context) *model.User {
	u := authmw.User(c)
	if u == nil {
		serdser.Err(
			c, http.StatusUnauthorized,
			"authorization token is required",
		)
	}
	return u
}

func (rs *resource) DserCreateRequestReq(
	c *gin.Context,
) *requestsuc.NewRequest {
	req := &rawCreateRequestReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	vid, err := uuid.Parse(req.VehicleID)
	if err != nil {
		serdser.Err(
			c, http.StatusBadRequest,
			"vehicleId is not a valid UUID",
		)
		return nil
	}
	rt, err := model.ParseRequestType(req.Type)
	if err != nil {
		serdser.Err(c, http.StatusBadRequest, err.Error())
		return nil
	}
	return &requestsuc.NewRequest{
		VehicleID: vid,
		Type:      rt,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Message:   req.Message,
	}
}

func (rs *resource) DserRequestID(c *gin.Context) (uuid.UUID, bool) {
	rid, err := uuid.Parse(c.Param("rid"))
	if err != nil {
		serdser.Err(
			c, http.StatusBadRequest,
			"path param rid is not a valid UUID",
		)
		return uuid.Nil, false
	}
	return rid, true
}

func (rs *resource) DserRequestStatus(
	c *gin.Context,
) (model.RequestStatus, bool) {
	req := &rawUpdateStatusReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return model.RequestStatusInvalid, false
	}
	status, err := model.ParseRequestStatus(req.Status)
	if err != nil {
		serdser.Err(c, http.StatusBadRequest, err.Error())
		return model.RequestStatusInvalid, false
	}
	return status, true
}
