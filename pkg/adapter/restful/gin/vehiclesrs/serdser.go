package vehiclesrs

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealer-web/pkg/core/imgstore"
	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/momeni/dealer-web/pkg/core/usecase/vehiclesuc"
)

type rawVehicleCreateReq struct {
	Make           string  `form:"make" binding:"required"`
	Model          string  `form:"model" binding:"required"`
	Year           int     `form:"year" binding:"required"`
	FuelType       string  `form:"fuel_type"`
	Transmission   string  `form:"transmission"`
	Drive          string  `form:"drive"`
	Class          string  `form:"class"`
	Cylinders      int     `form:"cylinders"`
	Displacement   float64 `form:"displacement"`
	CityMPG        int     `form:"city_mpg"`
	HighwayMPG     int     `form:"highway_mpg"`
	CombinationMPG int     `form:"combination_mpg"`
	Price          float64 `form:"price"`
	Status         string  `form:"status" binding:"required,oneof=for-sale for-rent to-acquire"`
	Available      *bool   `form:"available"`
}

type rawVehicleUpdateReq struct {
	Make           *string  `form:"make"`
	Model          *string  `form:"model"`
	Year           *int     `form:"year"`
	FuelType       *string  `form:"fuel_type"`
	Transmission   *string  `form:"transmission"`
	Drive          *string  `form:"drive"`
	Class          *string  `form:"class"`
	Cylinders      *int     `form:"cylinders"`
	Displacement   *float64 `form:"displacement"`
	CityMPG        *int     `form:"city_mpg"`
	HighwayMPG     *int     `form:"highway_mpg"`
	CombinationMPG *int     `form:"combination_mpg"`
	Price          *float64 `form:"price"`
	Status         *string  `form:"status" binding:"omitempty,oneof=for-sale for-rent to-acquire"`
	Available      *bool    `form:"available"`
}

type vehicleCreateReq struct {
	Fields  vehiclesuc.NewVehicle
	Uploads []imgstore.Upload
}

type vehicleUpdateReq struct {
	Patch      model.VehiclePatch
	KeepImages []string
	Uploads    []imgstore.Upload
}

type listFilter struct {
	Keyword  string
	Page     int
	PageSize int
}

// DserListFilter reads the keyword, page, and pageSize query params.
// Absent and non-numeric page values are passed along as zero, so the
// use case applies its defaults uniformly.
func (rs *resource) DserListFilter(c *gin.Context) listFilter {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	return listFilter{
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	}
}

func (rs *resource) DserVehicleID(c *gin.Context) (uuid.UUID, bool) {
	vid, err := uuid.Parse(c.Param("vid"))
	if err != nil {
		serdser.Err(
			c, http.StatusBadRequest,
			"path param vid is not a valid UUID",
		)
		return uuid.Nil, false
	}
	return vid, true
}

func (rs *resource) DserCreateVehicleReq(
	c *gin.Context,
) *vehicleCreateReq {
	req := &rawVehicleCreateReq{}
	if ok := serdser.Bind(c, req, binding.FormMultipart); !ok {
		return nil
	}
	status, err := model.ParseVehicleStatus(req.Status)
	if err != nil {
		serdser.Err(c, http.StatusBadRequest, err.Error())
		return nil
	}
	uploads, ok := rs.DserUploads(c)
	if !ok {
		return nil
	}
	return &vehicleCreateReq{
		Fields: vehiclesuc.NewVehicle{
			Make:           req.Make,
			Model:          req.Model,
			Year:           req.Year,
			FuelType:       req.FuelType,
			Transmission:   req.Transmission,
			Drive:          req.Drive,
			Class:          req.Class,
			Cylinders:      req.Cylinders,
			Displacement:   req.Displacement,
			CityMPG:        req.CityMPG,
			HighwayMPG:     req.HighwayMPG,
			CombinationMPG: req.CombinationMPG,
			Price:          req.Price,
			Status:         status,
			Available:      req.Available,
		},
		Uploads: uploads,
	}
}

func (rs *resource) DserUpdateVehicleReq(
	c *gin.Context,
) *vehicleUpdateReq {
	req := &rawVehicleUpdateReq{}
	if ok := serdser.Bind(c, req, binding.FormMultipart); !ok {
		return nil
	}
	p := model.VehiclePatch{
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		FuelType:       req.FuelType,
		Transmission:   req.Transmission,
		Drive:          req.Drive,
		Class:          req.Class,
		Cylinders:      req.Cylinders,
		Displacement:   req.Displacement,
		CityMPG:        req.CityMPG,
		HighwayMPG:     req.HighwayMPG,
		CombinationMPG: req.CombinationMPG,
		Price:          req.Price,
		Available:      req.Available,
	}
	if req.Status != nil {
		status, err := model.ParseVehicleStatus(*req.Status)
		if err != nil {
			serdser.Err(c, http.StatusBadRequest, err.Error())
			return nil
		}
		p.Status = &status
	}
	uploads, ok := rs.DserUploads(c)
	if !ok {
		return nil
	}
	keep := c.PostFormArray("keepImages")
	if len(keep) == 0 {
		keep = c.PostFormArray("keepImages[]")
	}
	return &vehicleUpdateReq{
		Patch:      p,
		KeepImages: keep,
		Uploads:    uploads,
	}
}

// DserUploads collects the "images" multipart files as imgstore
// uploads. File contents are not read here; each upload exposes an
// Open function, so the use case can stream them after validation.
func (rs *resource) DserUploads(
	c *gin.Context,
) ([]imgstore.Upload, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		serdser.Err(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	files := form.File["images"]
	uploads := make([]imgstore.Upload, len(files))
	for i, fh := range files {
		fh := fh
		uploads[i] = imgstore.Upload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		}
	}
	return uploads, true
}
