package queries_test

import (
	"testing"
	"time"

	"github.com/smaikl/GLG-bot/internal/adapters/out/persistence"
	"github.com/smaikl/GLG-bot/internal/adapters/out/persistence/sqlitetest"
	"github.com/smaikl/GLG-bot/internal/core/application/usecases/queries"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/document"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/core/ports"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

const (
	senderID       int64 = 11
	carrierID      int64 = 22
	otherCarrierID int64 = 33
)

type QueryHandlersTestSuite struct {
	suite.Suite
	repos ports.UnitOfWork
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}

func (s *QueryHandlersTestSuite) SetupTest() {
	s.repos = persistence.NewGormUnitOfWorkFactory(sqlitetest.Open(s.T())).Create()

	s.addUser(senderID, kernel.RoleSender)
	s.addUser(carrierID, kernel.RoleCarrier)
	s.addUser(otherCarrierID, kernel.RoleCarrier)
}

func (s *QueryHandlersTestSuite) addUser(id int64, role kernel.Role) {
	phone, err := kernel.NewPhone("+79991234567")
	s.Require().NoError(err)
	u, err := user.NewUser(id, role, user.Profile{FullName: "User", Phone: phone}, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.repos.UserRepository().Add(s.T().Context(), u))
}

func (s *QueryHandlersTestSuite) addOrder(createdAt time.Time) *order.Order {
	w, err := kernel.NewWeight(100)
	s.Require().NoError(err)
	o, err := order.NewOrder(senderID, order.Cargo{
		Type:            order.CargoFragile,
		Weight:          w,
		PickupAddress:   "A",
		DeliveryAddress: "B",
		PickupDate:      "today",
	}, createdAt)
	s.Require().NoError(err)
	s.Require().NoError(s.repos.OrderRepository().Add(s.T().Context(), o))
	return o
}

func (s *QueryHandlersTestSuite) accept(o *order.Order) {
	s.Require().NoError(o.Accept(carrierID, kernel.RoleCarrier))
	s.Require().NoError(s.repos.OrderRepository().Update(s.T().Context(), o))
}

func (s *QueryHandlersTestSuite) TestGetAvailableOrders_PagesAreStable() {
	ctx := s.T().Context()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 12 {
		s.addOrder(base.Add(time.Duration(i) * time.Minute))
	}
	s.accept(s.addOrder(base.Add(time.Hour)))

	handler := queries.NewGetAvailableOrdersQueryHandler(s.repos.OrderRepository())
	var seen []int64
	for page := 1; page <= 4; page++ {
		q, err := queries.NewGetAvailableOrdersQuery(page)
		s.Require().NoError(err)

		first, err := handler.Handle(ctx, q)
		s.Require().NoError(err)
		second, err := handler.Handle(ctx, q)
		s.Require().NoError(err)

		s.Equal(3, first.TotalPages)
		s.Equal(12, first.TotalItems)
		s.Require().Len(second.Items, len(first.Items))
		for i := range first.Items {
			s.Equal(first.Items[i].ID(), second.Items[i].ID())
			s.Equal(order.New, first.Items[i].Status())
			seen = append(seen, first.Items[i].ID())
		}
	}

	s.Len(seen, 12)
	for i := 1; i < len(seen); i++ {
		s.Greater(seen[i-1], seen[i], "newest first")
	}
}

func (s *QueryHandlersTestSuite) TestGetActorOrders() {
	ctx := s.T().Context()
	open := s.addOrder(time.Now().Add(-time.Minute))
	taken := s.addOrder(time.Now())
	s.accept(taken)

	handler := queries.NewGetActorOrdersQueryHandler(s.repos.UserRepository(), s.repos.OrderRepository())

	q, _ := queries.NewGetActorOrdersQuery(senderID)
	sent, err := handler.Handle(ctx, q)
	s.Require().NoError(err)
	s.Require().Len(sent, 2)
	s.Equal(taken.ID(), sent[0].ID())
	s.Equal(open.ID(), sent[1].ID())

	q, _ = queries.NewGetActorOrdersQuery(carrierID)
	carried, err := handler.Handle(ctx, q)
	s.Require().NoError(err)
	s.Require().Len(carried, 1)
	s.Equal(taken.ID(), carried[0].ID())

	q, _ = queries.NewGetActorOrdersQuery(9999)
	_, err = handler.Handle(ctx, q)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QueryHandlersTestSuite) TestGetOrderDetails() {
	ctx := s.T().Context()
	handler := queries.NewGetOrderDetailsQueryHandler(s.repos.UserRepository(), s.repos.OrderRepository())
	o := s.addOrder(time.Now())

	s.Run("carrier sees a new order with accept", func() {
		q, _ := queries.NewGetOrderDetailsQuery(o.ID(), carrierID)
		resp, err := handler.Handle(ctx, q)
		s.Require().NoError(err)
		s.Equal([]order.Action{order.ActionAccept}, resp.Actions)
		s.Nil(resp.Counterparty)
	})

	s.accept(o)

	s.Run("sender sees the carrier contact", func() {
		q, _ := queries.NewGetOrderDetailsQuery(o.ID(), senderID)
		resp, err := handler.Handle(ctx, q)
		s.Require().NoError(err)
		s.Require().NotNil(resp.Counterparty)
		s.Equal(carrierID, resp.Counterparty.ID())
		s.Contains(resp.Actions, order.ActionViewDocuments)
		s.NotContains(resp.Actions, order.ActionCancel)
	})

	s.Run("other carrier cannot open an accepted order", func() {
		q, _ := queries.NewGetOrderDetailsQuery(o.ID(), otherCarrierID)
		_, err := handler.Handle(ctx, q)
		s.Require().ErrorIs(err, errs.ErrForbidden)
	})

	s.Run("unknown order", func() {
		q, _ := queries.NewGetOrderDetailsQuery(o.ID()+100, senderID)
		_, err := handler.Handle(ctx, q)
		s.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})
}

func (s *QueryHandlersTestSuite) TestGetOrderDocuments() {
	ctx := s.T().Context()
	o := s.addOrder(time.Now())
	d, err := document.NewDocument(o.ID(), "1/x.pdf", "x.pdf", document.KindDocument, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.repos.DocumentRepository().Add(ctx, d))

	handler := queries.NewGetOrderDocumentsQueryHandler(s.repos.OrderRepository(), s.repos.DocumentRepository())

	q, _ := queries.NewGetOrderDocumentsQuery(o.ID(), senderID)
	docs, err := handler.Handle(ctx, q)
	s.Require().NoError(err)
	s.Require().Len(docs, 1)
	s.Equal("x.pdf", docs[0].Name())

	q, _ = queries.NewGetOrderDocumentsQuery(o.ID(), carrierID)
	_, err = handler.Handle(ctx, q)
	s.Require().ErrorIs(err, errs.ErrForbidden)
}

func (s *QueryHandlersTestSuite) TestGetUser() {
	handler := queries.NewGetUserQueryHandler(s.repos.UserRepository())

	q, _ := queries.NewGetUserQuery(carrierID)
	u, err := handler.Handle(s.T().Context(), q)
	s.Require().NoError(err)
	s.True(u.IsCarrier())

	_, err = queries.NewGetUserQuery(0)
	s.Require().ErrorIs(err, errs.ErrValueIsRequired)
}
