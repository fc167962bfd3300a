package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gameforge/ui-api/internal/domain/model"
	apperrors "github.com/gameforge/ui-api/internal/errors"
	"github.com/gameforge/ui-api/internal/mocks"
	"github.com/gameforge/ui-api/internal/testutil"
)

func TestNewAccountService_RequiresProfiles(t *testing.T) {
	_, err := NewAccountService(AccountServiceOptions{})
	require.Error(t, err)
}

func TestAccountService_GetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := mocks.NewMockProfileAPI(ctrl)
	profiles.EXPECT().
		GetProfile(gomock.Any(), "user-1").
		Return(&model.Profile{UserID: "user-1", DisplayName: "Ada"}, nil)

	svc, err := NewAccountService(AccountServiceOptions{Profiles: profiles})
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.DisplayName)

	_, err = svc.GetProfile(context.Background(), "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestAccountService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := mocks.NewMockProfileAPI(ctrl)
	profiles.EXPECT().
		UpdateProfile(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error) {
			return &model.Profile{UserID: userID, DisplayName: *req.DisplayName}, nil
		})

	svc, err := NewAccountService(AccountServiceOptions{Profiles: profiles})
	require.NoError(t, err)

	profile, err := svc.UpdateProfile(context.Background(), "user-1", &model.UpdateProfileRequest{
		DisplayName: testutil.StringPtr("Grace"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", profile.DisplayName)
}

func TestAccountService_UpdateProfile_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, err := NewAccountService(AccountServiceOptions{Profiles: mocks.NewMockProfileAPI(ctrl)})
	require.NoError(t, err)

	ctx := context.Background()

	_, err = svc.UpdateProfile(ctx, "user-1", nil)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.UpdateProfile(ctx, "user-1", &model.UpdateProfileRequest{})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.UpdateProfile(ctx, "user-1", &model.UpdateProfileRequest{
		DisplayName: testutil.StringPtr("   "),
	})
	assert.True(t, apperrors.IsValidation(err))
}
