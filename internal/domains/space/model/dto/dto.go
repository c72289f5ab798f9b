package dto

import (
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"spacebook/internal/domains/space/model"
	"spacebook/shared"
	"spacebook/shared/constant"
	gDto "spacebook/shared/dto"
	gModel "spacebook/shared/model"
	"spacebook/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateSpaceRequest struct {
	Name         string   `json:"name"           validate:"required,max=150"`
	Type         string   `json:"type"           validate:"required,anyof=coworking;meeting room;event venue;conference hall"`
	Location     string   `json:"location"       validate:"required,max=150"`
	Capacity     int      `json:"capacity"       validate:"required,gte=1"`
	Amenities    []string `json:"amenities"      validate:"omitempty,dive,max=50"`
	Description  string   `json:"description"    validate:"omitempty,max=2000"`
	PricePerHour *float64 `json:"price_per_hour" validate:"required,gte=0"`
	Images       []string `json:"images"         validate:"omitempty,dive,url"`
}

func (c *CreateSpaceRequest) ToModel(user string) model.Space {
	var price float64
	if c.PricePerHour != nil {
		price = *c.PricePerHour
	}

	images := pq.StringArray{}
	if len(c.Images) > 0 {
		images = append(images, c.Images...)
	}

	return model.Space{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(c.Name),
		Type:         c.Type,
		Location:     strings.TrimSpace(c.Location),
		Capacity:     c.Capacity,
		Amenities:    model.UniqueLabels(c.Amenities),
		Description:  c.Description,
		PricePerHour: price,
		Images:       images,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateSpaceRequest only changes the fields that are present.
type UpdateSpaceRequest struct {
	Name         *string   `db:"name"           json:"name"           validate:"omitempty,min=1,max=150"`
	Type         *string   `db:"type"           json:"type"           validate:"omitempty,anyof=coworking;meeting room;event venue;conference hall"`
	Location     *string   `db:"location"       json:"location"       validate:"omitempty,min=1,max=150"`
	Capacity     *int      `db:"capacity"       json:"capacity"       validate:"omitempty,gte=1"`
	Description  *string   `db:"description"    json:"description"    validate:"omitempty,max=2000"`
	PricePerHour *float64  `db:"price_per_hour" json:"price_per_hour" validate:"omitempty,gte=0"`
	Amenities    *[]string `json:"amenities"      validate:"omitempty,dive,max=50"`
	Images       *[]string `json:"images"         validate:"omitempty,dive,url"`
}

func (u *UpdateSpaceRequest) IsEmpty() bool {
	return u.Name == nil && u.Type == nil && u.Location == nil && u.Capacity == nil &&
		u.Description == nil && u.PricePerHour == nil && u.Amenities == nil && u.Images == nil
}

// ToFields renders the update as column values, stamping the modifier.
func (u *UpdateSpaceRequest) ToFields(user string) map[string]any {
	fields := shared.TransformFields(*u, user)

	if u.Amenities != nil {
		fields[model.FieldAmenities] = model.UniqueLabels(*u.Amenities)
	}

	if u.Images != nil {
		fields[model.FieldImages] = pq.StringArray(append([]string{}, *u.Images...))
	}

	return fields
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

// ObjectName is a fresh object name keeping the uploaded file extension.
func (u *UploadImageRequest) ObjectName() string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(u.Image.Filename))
}

// ContentType is the declared part type, or the one implied by the extension.
func (u *UploadImageRequest) ContentType() string {
	if declared := u.Image.Header.Get(constant.RequestHeaderContentType); declared != "" {
		return declared
	}

	return mime.TypeByExtension(strings.ToLower(filepath.Ext(u.Image.Filename)))
}

type SpaceResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Location     string   `json:"location"`
	Capacity     int      `json:"capacity"`
	Amenities    []string `json:"amenities"`
	Description  string   `json:"description"`
	PricePerHour float64  `json:"price_per_hour"`
	Images       []string `json:"images"`
	gDto.Metadata
}

func (r *SpaceResponse) FromModel(model model.Space) {
	r.ID = model.ID
	r.Name = model.Name
	r.Type = model.Type
	r.Location = model.Location
	r.Capacity = model.Capacity
	r.Amenities = append([]string{}, model.Amenities...)
	r.Description = model.Description
	r.PricePerHour = model.PricePerHour
	r.Images = append([]string{}, model.Images...)
	r.Metadata = gDto.NewMetadata(model.Metadata)
}

type GetSpacesResponse struct {
	Spaces    []SpaceResponse `json:"spaces"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetSpacesResponse) FromModels(models []model.Space, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Spaces = make([]SpaceResponse, len(models))
	for i, mod := range models {
		r.Spaces[i].FromModel(mod)
	}
}

// ListFilter is the catalog search accepted by GET /spaces.
type ListFilter struct {
	Type     string `json:"type"     validate:"omitempty,anyof=coworking;meeting room;event venue;conference hall"`
	Location string `json:"location" validate:"omitempty,max=150"`
	Name     string `json:"name"     validate:"omitempty,max=150"`
}

func (f ListFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Type != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldType,
			Operator: gDto.FilterOperatorEq,
			Value:    f.Type,
			Table:    model.TableName,
		})
	}

	if f.Location != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldLocation,
			Operator: gDto.FilterOperatorLike,
			Value:    f.Location,
			Table:    model.TableName,
		})
	}

	if f.Name != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    f.Name,
			Table:    model.TableName,
		})
	}

	return group
}
