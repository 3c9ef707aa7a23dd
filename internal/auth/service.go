package auth

// Service performs authentication against the app_users table and issues
// JWT pairs whose claims carry role and academy scope.
type Service struct {
	userRepo       RepositoryAPI
	tokenGenerator TokenGeneratorAPI
}

func NewService(userRepo RepositoryAPI, tokenGen TokenGeneratorAPI) *Service {
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
	}
}

func (s *Service) Authenticate(dto LoginDTO) (LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return LoginResponse{}, err
	}

	user, err := s.userRepo.GetActiveUserByEmail(dto.Email)
	if err != nil {
		return LoginResponse{}, ErrInvalidCredentials
	}

	if err := VerifyPassword(user.PasswordHash, dto.Password); err != nil {
		return LoginResponse{}, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		AuthTokens: tokens,
		Role:       user.Role,
		AcademyID:  user.AcademyID,
		Email:      user.Email,
	}, nil
}

func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	// Re-read the user so a deactivated account or changed role cannot keep
	// minting fresh tokens from an old refresh token.
	user, err := s.userRepo.GetActiveUserByID(claims.UserID)
	if err != nil {
		return AuthTokens{}, ErrUserInactive
	}

	return s.issueTokens(user)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

func (s *Service) issueTokens(user *AccountRecord) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(user)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(user)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
