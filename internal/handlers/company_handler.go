package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/anonto42/introhub/backend/internal/apperrors"
	"github.com/anonto42/introhub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const (
	companyDocumentsField = "documents"
	memberImageField      = "image"
)

// CompanyHandler serves the company directory and membership routes.
type CompanyHandler struct {
	companies *services.CompanyService
}

func NewCompanyHandler(companies *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// RegisterPublicRoutes registers routes that need no authentication.
func (h *CompanyHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/company/list", h.List)
}

func (h *CompanyHandler) RegisterCompanyRoutes(g *echo.Group) {
	g.POST("/company/add", h.Add)
	g.POST("/company-member/add", h.AddMember)
}

// Add accepts multipart form fields plus any number of "documents" files.
func (h *CompanyHandler) Add(c echo.Context) error {
	var req services.AddCompanyInput
	if err := bind(c, &req); err != nil {
		return err
	}

	headers, err := formFiles(c, companyDocumentsField)
	if err != nil {
		return err
	}

	docs := make([]services.Upload, 0, len(headers))
	for _, fh := range headers {
		upload, closeFn, err := openUpload(fh)
		if err != nil {
			return err
		}
		defer closeFn()
		docs = append(docs, upload)
	}

	ids, err := h.companies.Add(c.Request().Context(), req, docs)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Company added successfully", echo.Map{"company_ids": ids})
}

func (h *CompanyHandler) List(c echo.Context) error {
	companies, err := h.companies.List(c.Request().Context(), c.QueryParam("search_text"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Company list fetched successfully", companies)
}

// AddMember attaches the current user to a company with an optional
// profile "image".
func (h *CompanyHandler) AddMember(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req services.AddCompanyMemberInput
	if err := bind(c, &req); err != nil {
		return err
	}

	var image *services.Upload
	headers, err := formFiles(c, memberImageField)
	if err != nil {
		return err
	}
	if len(headers) > 0 {
		upload, closeFn, err := openUpload(headers[0])
		if err != nil {
			return err
		}
		defer closeFn()
		image = &upload
	}

	id, err := h.companies.AddMember(c.Request().Context(), req, image, user)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Company member added successfully", echo.Map{"company_member_id": id})
}

// formFiles returns the files sent under field. Requests that are not
// multipart carry no files.
func formFiles(c echo.Context, field string) ([]*multipart.FileHeader, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperrors.Validation("Invalid multipart form")
	}
	return form.File[field], nil
}

func openUpload(fh *multipart.FileHeader) (services.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return services.Upload{}, nil, apperrors.Internal(err)
	}
	return services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        f,
	}, func() { f.Close() }, nil
}
