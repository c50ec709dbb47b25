package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"quiethours/config"
	"quiethours/infras/jwt"
	"quiethours/infras/otel"
	"quiethours/infras/s3"
	"quiethours/internal/domains/auth/model/dto"
	userModel "quiethours/internal/domains/user/model"
	userDto "quiethours/internal/domains/user/model/dto"
	userRepo "quiethours/internal/domains/user/repository"
	"quiethours/shared"
	"quiethours/shared/base64"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	"quiethours/shared/failure"
	"quiethours/shared/password"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const profileImageDirectory = "profiles"

type Auth interface {
	Signup(ctx context.Context, req dto.SignupRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (userDto.UserResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, userID string) (userDto.UserResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	s3         s3.S3
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, s3 s3.S3) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		s3:         s3,
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Signup(ctx context.Context, req dto.SignupRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Signup")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromToken(token, user)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.Get(ctx, emailFilter(req.Email))
	if err != nil || user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized("invalid email or password") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("invalid email or password") // nolint:wrapcheck
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromToken(token, user)

	return res, nil
}

func (s *serviceImpl) GetProfile(ctx context.Context, userID string) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, userID string) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	fields := userDto.UpdateProfileFields{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Bio:       req.Bio,
	}

	if req.ProfileImage != nil && *req.ProfileImage != constant.Empty {
		imageURL, err := s.uploadProfileImage(ctx, *req.ProfileImage)
		if err != nil {
			return res, err
		}

		fields.ProfileImage = &imageURL

		if user.ProfileImage != nil {
			s.deleteOldProfileImage(ctx, *user.ProfileImage)
		}
	}

	updatedFields := shared.TransformFields(fields, userID)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return res, fmt.Errorf("failed to update profile: %w", err)
	}

	updated, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get updated user")

		return res, fmt.Errorf("failed to get updated user: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) uploadProfileImage(ctx context.Context, dataURI string) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".uploadProfileImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	contentType := base64.GetContentType(dataURI)

	imageData, err := base64.Decode(dataURI)
	if err != nil {
		return constant.Empty, failure.BadRequestFromString("invalid profile image encoding") // nolint:wrapcheck
	}

	ext := contentType[strings.LastIndex(contentType, "/")+1:]
	fileName := fmt.Sprintf("%s.%s", uuid.NewString(), ext)

	url, err = s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, profileImageDirectory, fileName, contentType, imageData)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload profile image")

		return constant.Empty, fmt.Errorf("failed to upload profile image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) deleteOldProfileImage(ctx context.Context, imageURL string) {
	bucket := s.cfg.External.S3.BucketName

	objectName := s.s3.GetObjectNameFromURL(bucket, imageURL)
	if objectName == constant.Empty {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.s3.DeleteFile(c, bucket, constant.Empty, objectName); err != nil {
			log.Warn().Err(err).Str("object", objectName).Msg("failed to delete old profile image")
		}
	}()
}
