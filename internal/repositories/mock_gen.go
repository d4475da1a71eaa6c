package repositories

//go:generate mockgen -source=./user_repository.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepository
//go:generate mockgen -source=./introduction_repository.go -destination=../mocks/mock_introduction_repository.go -package=mocks IntroductionRepository
//go:generate mockgen -source=./notification_repository.go -destination=../mocks/mock_notification_repository.go -package=mocks NotificationRepository
//go:generate mockgen -source=./company_repository.go -destination=../mocks/mock_company_repository.go -package=mocks CompanyRepository
//go:generate mockgen -source=./company_member_repository.go -destination=../mocks/mock_company_member_repository.go -package=mocks CompanyMemberRepository
