package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 관리자 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // 로그인 필요
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // 잘못된 이메일/비밀번호
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // 토큰 만료
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // 잘못된 토큰
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // 이메일 중복

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"  // 접근 권한 없음
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY" // 관리자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // 잘못된 ID
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // 범위 초과
	ValidationRequired     = "VALIDATION_REQUIRED"      // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 엔티티 (ENTITY_) ====================
	EntityNotFound          = "ENTITY_NOT_FOUND"          // 엔티티 없음
	EntityUnknownKind       = "ENTITY_UNKNOWN_KIND"       // 지원하지 않는 엔티티 종류
	EntityInvalidTransition = "ENTITY_INVALID_TRANSITION" // 허용되지 않는 상태 전이
	EntityUpdateConflict    = "ENTITY_UPDATE_CONFLICT"    // 동시 수정 충돌
	EntityCodeExists        = "ENTITY_CODE_EXISTS"        // 코드 중복

	// ==================== 계정 생성 (PROVISION_) ====================
	ProvisionIdentityFailed = "PROVISION_IDENTITY_FAILED" // 인증 계정 생성 실패
	ProvisionProfileFailed  = "PROVISION_PROFILE_FAILED"  // 프로필 생성 실패
	ProvisionEntityFailed   = "PROVISION_ENTITY_FAILED"   // 엔티티 생성 실패

	// ==================== 감사 로그 (AUDIT_) ====================
	AuditWriteFailed  = "AUDIT_WRITE_FAILED"  // 감사 로그 기록 실패
	AuditExportFailed = "AUDIT_EXPORT_FAILED" // 감사 로그 내보내기 실패

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // 외부 API 오류
)
