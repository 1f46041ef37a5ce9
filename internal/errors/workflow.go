package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/internal/app/service"
)

// WorkflowStatus 관리자 워크플로 에러를 HTTP 상태 코드와 에러 코드로 변환
func WorkflowStatus(err error) (int, ErrorInfo) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, ErrorInfo{Code: ValidationInvalidInput, Message: validationDetail(err)}
	case errors.Is(err, service.ErrUnknownEntityKind):
		return http.StatusBadRequest, ErrorInfo{Code: EntityUnknownKind, Message: "지원하지 않는 엔티티 종류입니다"}
	case errors.Is(err, service.ErrEntityNotFound), errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, ErrorInfo{Code: EntityNotFound, Message: "엔티티를 찾을 수 없습니다"}
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict, ErrorInfo{Code: EntityInvalidTransition, Message: "현재 상태에서는 처리할 수 없습니다"}
	case errors.Is(err, service.ErrUpdateConflict):
		return http.StatusConflict, ErrorInfo{Code: EntityUpdateConflict, Message: "다른 관리자가 먼저 처리했습니다. 새로고침 후 다시 시도해주세요"}
	case errors.Is(err, repository.ErrIdentityExists):
		return http.StatusConflict, ErrorInfo{Code: AuthEmailAlreadyExists, Message: "이미 사용 중인 이메일입니다"}
	case errors.Is(err, service.ErrIdentityCreation):
		return http.StatusInternalServerError, ErrorInfo{Code: ProvisionIdentityFailed, Message: "인증 계정 생성에 실패했습니다"}
	case errors.Is(err, service.ErrProfileCreation):
		return http.StatusInternalServerError, ErrorInfo{Code: ProvisionProfileFailed, Message: "프로필 생성에 실패했습니다"}
	case errors.Is(err, service.ErrEntityCreation):
		info := ErrorInfo{Code: ProvisionEntityFailed, Message: "엔티티 생성에 실패했습니다"}
		if parsed := ParseError(err, "create entity"); parsed.Code == EntityCodeExists {
			return http.StatusConflict, parsed
		}
		return http.StatusInternalServerError, info
	case errors.Is(err, service.ErrAuditWrite):
		return http.StatusInternalServerError, ErrorInfo{Code: AuditWriteFailed, Message: "감사 로그 기록에 실패했습니다"}
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorInfo{Code: AuthInvalidCredentials, Message: "이메일 또는 비밀번호가 올바르지 않습니다"}
	case errors.Is(err, service.ErrNotAdmin):
		return http.StatusForbidden, ErrorInfo{Code: AuthzAdminOnly, Message: "관리자만 접근할 수 있습니다"}
	}

	return http.StatusInternalServerError, ParseError(err, "")
}

// RespondWithWorkflowError 워크플로 에러 응답
func RespondWithWorkflowError(c *gin.Context, err error) {
	status, info := WorkflowStatus(err)
	RespondWithError(c, status, info.Code, info.Message)
}

func validationDetail(err error) string {
	var wf *service.WorkflowError
	if errors.As(err, &wf) && wf.Err != nil {
		return wf.Err.Error()
	}
	return "입력값이 올바르지 않습니다"
}
