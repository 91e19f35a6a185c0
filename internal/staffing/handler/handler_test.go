package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"eventcare/internal/access"
	"eventcare/internal/records/models"
	"eventcare/internal/staffing/handler/mocks"
	"eventcare/internal/staffing/service"
	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
	"eventcare/pkg/testutil"
)

type StaffingHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	admin   access.Principal
}

func TestStaffingHandlerSuite(t *testing.T) {
	suite.Run(t, new(StaffingHandlerSuite))
}

func (s *StaffingHandlerSuite) SetupTest() {
	s.service = mocks.NewMockService(gomock.NewController(s.T()))
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
	s.admin = access.Principal{ID: id.NewUserID(), Role: access.RoleAdmin}
}

func (s *StaffingHandlerSuite) as(req *http.Request) *http.Request {
	return testutil.WithPrincipal(req, s.admin.ID, string(s.admin.Role))
}

func (s *StaffingHandlerSuite) TestCreateEvent() {
	s.Run("bare date", func() {
		want := service.CreateEventInput{Name: "Regatta", StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
		s.service.EXPECT().CreateEvent(gomock.Any(), s.admin, want).
			Return(&models.CareEvent{ID: id.NewEventID(), Name: "Regatta", StartDate: want.StartDate}, nil)

		rr := testutil.DoRequest(s.router, s.as(testutil.NewJSONRequest(s.T(), http.MethodPost, "/events",
			map[string]string{"name": "Regatta", "start_date": "2024-06-01"})))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "name", "Regatta")
	})

	s.Run("bad date", func() {
		rr := testutil.DoRequest(s.router, s.as(testutil.NewJSONRequest(s.T(), http.MethodPost, "/events",
			map[string]string{"name": "Regatta", "start_date": "June"})))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("forbidden", func() {
		s.service.EXPECT().CreateEvent(gomock.Any(), s.admin, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "access denied"))
		rr := testutil.DoRequest(s.router, s.as(testutil.NewJSONRequest(s.T(), http.MethodPost, "/events",
			map[string]string{"name": "Regatta", "start_date": "2024-06-01T06:00:00Z"})))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, string(dErrors.CodeForbidden))
	})
}

func (s *StaffingHandlerSuite) TestAssignStaff() {
	eventID := id.NewEventID()
	userID := id.NewUserID()
	path := "/events/" + eventID.String() + "/staff/" + userID.String()

	s.Run("with role", func() {
		s.service.EXPECT().AssignStaff(gomock.Any(), s.admin, eventID, userID, "lead").
			Return(&models.StaffAssignment{UserID: userID, EventID: eventID, Role: "lead"}, nil)
		rr := testutil.DoRequest(s.router, s.as(testutil.NewJSONRequest(s.T(), http.MethodPut, path,
			map[string]string{"role": " Lead "})))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	})

	s.Run("without body", func() {
		s.service.EXPECT().AssignStaff(gomock.Any(), s.admin, eventID, userID, "").
			Return(&models.StaffAssignment{UserID: userID, EventID: eventID, Role: "staff"}, nil)
		rr := testutil.DoRequest(s.router, s.as(testutil.NewRequest(s.T(), http.MethodPut, path)))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "role", "staff")
	})

	s.Run("conflict", func() {
		s.service.EXPECT().AssignStaff(gomock.Any(), s.admin, eventID, userID, "").
			Return(nil, dErrors.New(dErrors.CodeConflict, "already assigned"))
		rr := testutil.DoRequest(s.router, s.as(testutil.NewRequest(s.T(), http.MethodPut, path)))
		testutil.AssertStatus(s.T(), rr, http.StatusConflict)
	})

	s.Run("bad user id", func() {
		rr := testutil.DoRequest(s.router, s.as(testutil.NewRequest(s.T(), http.MethodPut,
			"/events/"+eventID.String()+"/staff/someone")))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}

func (s *StaffingHandlerSuite) TestListAndUnassign() {
	eventID := id.NewEventID()
	userID := id.NewUserID()

	s.service.EXPECT().ListStaff(gomock.Any(), s.admin, eventID).Return(nil, nil)
	rr := testutil.DoRequest(s.router, s.as(testutil.NewRequest(s.T(), http.MethodGet, "/events/"+eventID.String()+"/staff")))
	testutil.AssertStatusOK(s.T(), rr)
	s.JSONEq(`{"staff":[]}`, rr.Body.String())

	s.service.EXPECT().UnassignStaff(gomock.Any(), s.admin, eventID, userID).Return(nil)
	rr = testutil.DoRequest(s.router, s.as(testutil.NewRequest(s.T(), http.MethodDelete,
		"/events/"+eventID.String()+"/staff/"+userID.String())))
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
}

func (s *StaffingHandlerSuite) TestReadEvents() {
	eventID := id.NewEventID()
	s.service.EXPECT().GetEvent(gomock.Any(), s.admin, eventID).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "event not found"))
	rr := testutil.DoRequest(s.router, s.as(testutil.NewRequest(s.T(), http.MethodGet, "/events/"+eventID.String())))
	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)

	s.service.EXPECT().ListEvents(gomock.Any(), s.admin).Return([]*models.CareEvent{{ID: eventID, Name: "Fair"}}, nil)
	rr = testutil.DoRequest(s.router, s.as(testutil.NewRequest(s.T(), http.MethodGet, "/events")))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONHasKey(s.T(), rr, "events")
}

func (s *StaffingHandlerSuite) TestUnauthenticated() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/events"))
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
}
