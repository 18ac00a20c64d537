package handler

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/unifiedhq/usp-api/internal/models"
	"github.com/unifiedhq/usp-api/pkg/response"
)

// SchemaHandler describes the stored entity shapes for API consumers.
type SchemaHandler struct{}

// NewSchemaHandler constructs the handler.
func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{}
}

type entitySchema struct {
	Name   string        `json:"name"`
	Fields []schemaField `json:"fields"`
}

type schemaField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional"`
}

var schemaEntities = []any{
	models.Branch{},
	models.Role{},
	models.User{},
	models.Resource{},
	models.ProgramRequest{},
	models.Approval{},
	models.Event{},
	models.Report{},
	models.Evaluation{},
	models.Notification{},
}

// Describe godoc
// @Summary Describe entity schemas
// @Tags Schema
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schema [get]
func (h *SchemaHandler) Describe(c *gin.Context) {
	schemas := make([]entitySchema, 0, len(schemaEntities))
	for _, entity := range schemaEntities {
		t := reflect.TypeOf(entity)
		schema := entitySchema{Name: t.Name(), Fields: make([]schemaField, 0, t.NumField())}
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			tag := field.Tag.Get("json")
			name := strings.Split(tag, ",")[0]
			if name == "" || name == "-" {
				continue
			}
			ft := field.Type
			optional := ft.Kind() == reflect.Ptr
			if optional {
				ft = ft.Elem()
			}
			schema.Fields = append(schema.Fields, schemaField{
				Name:     name,
				Type:     ft.String(),
				Optional: optional || strings.Contains(tag, "omitempty"),
			})
		}
		schemas = append(schemas, schema)
	}
	response.JSON(c, http.StatusOK, schemas, nil)
}
