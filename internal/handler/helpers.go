package handler

import (
	"net/http"
	"reflect"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error(), http.StatusBadRequest))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQuery binds query parameters into a filter struct.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query parameters", http.StatusBadRequest))
		return false
	}
	return true
}

// pathUUID parses the :uuid path parameter.
func pathUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid uuid", http.StatusBadRequest))
		return uuid.Nil, false
	}
	return id, true
}

// fail hands the error to the ErrorHandler middleware, which classifies it
// and writes the envelope.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

// listEnvelope wraps list rows under _data.<key> next to the _page block.
func listEnvelope(key string, rows interface{}, page dto.Page) gin.H {
	return gin.H{"_data": gin.H{key: rows}, "_page": page}
}

// dataEnvelope wraps a single row under _data.<key>.
func dataEnvelope(key string, row interface{}) gin.H {
	return gin.H{"_data": gin.H{key: row}}
}

// actor returns the acting user's uuid for createdBy/deletedBy stamps, nil on
// unauthenticated routes.
func actor(c *gin.Context) *uuid.UUID {
	if identity := middleware.GetIdentity(c); identity != nil {
		u := identity.User
		return &u
	}
	return nil
}
