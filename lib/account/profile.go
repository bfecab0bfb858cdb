package account

import (
	"context"
	"net/http"

	"github.com/joshnies/pocket/lib/api"
	"github.com/joshnies/pocket/lib/endpoints"
	"github.com/joshnies/pocket/lib/validate"
	"github.com/joshnies/pocket/models"
)

// Name and content type the server expects for profile pictures.
const (
	profileImageField       = "image"
	profileImageName        = "profile_image.jpg"
	profileImageContentType = "image/jpeg"
)

func (s *Service) GetProfile(ctx context.Context) (models.Profile, error) {
	res, err := s.api.Call(ctx, api.Request{Key: endpoints.GetProfile})
	if err != nil {
		return models.Profile{}, err
	}

	var profile models.Profile
	if err = res.Decode(&profile); err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

// ValidateProfile checks a profile before it is sent.
func ValidateProfile(p models.Profile) error {
	if err := validate.Required("First Name is required.", validate.Field{Name: "firstName", Value: p.FirstName}); err != nil {
		return err
	}
	if err := validate.Required("Last Name is required.", validate.Field{Name: "lastName", Value: p.LastName}); err != nil {
		return err
	}
	if err := validate.Email(p.Email); err != nil {
		return err
	}

	return validate.Phone(p.Phone)
}

// UpdateProfile replaces the profile fields and, if imagePath is set, the profile picture.
func (s *Service) UpdateProfile(ctx context.Context, p models.Profile, imagePath string) error {
	if err := ValidateProfile(p); err != nil {
		return err
	}

	body := api.MultipartBody{
		Fields: []api.Field{
			{Name: "firstName", Value: p.FirstName},
			{Name: "lastName", Value: p.LastName},
			{Name: "email", Value: p.Email},
			{Name: "phone", Value: p.Phone},
		},
	}
	if imagePath != "" {
		body.Files = append(body.Files, profileImage(imagePath))
	}

	res, err := s.api.Upload(ctx, endpoints.UpdateProfile, http.MethodPut, body)
	if err != nil {
		return err
	}

	return res.ExpectOK()
}

// UploadProfilePicture sends a new profile picture.
func (s *Service) UploadProfilePicture(ctx context.Context, imagePath string) error {
	if err := validate.Required("Please choose an image.", validate.Field{Name: "image", Value: imagePath}); err != nil {
		return err
	}

	res, err := s.api.Upload(ctx, endpoints.UploadProfile, http.MethodPost, api.MultipartBody{
		Files: []api.FilePart{profileImage(imagePath)},
	})
	if err != nil {
		return err
	}

	return res.ExpectOK()
}

func profileImage(path string) api.FilePart {
	return api.FilePart{
		Field:       profileImageField,
		Path:        path,
		FileName:    profileImageName,
		ContentType: profileImageContentType,
	}
}
