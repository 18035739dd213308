package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpadapter "github.com/smaikl/GLG-bot/internal/adapters/in/http"
	"github.com/smaikl/GLG-bot/internal/adapters/in/telegram"
	"github.com/smaikl/GLG-bot/internal/adapters/out/filestore"
	"github.com/smaikl/GLG-bot/internal/adapters/out/persistence"
	"github.com/smaikl/GLG-bot/internal/adapters/out/sessionstore"
	"github.com/smaikl/GLG-bot/internal/core/application/conversation"
	"github.com/smaikl/GLG-bot/internal/core/application/notifications"
	"github.com/smaikl/GLG-bot/internal/core/application/usecases/commands"
	"github.com/smaikl/GLG-bot/internal/core/application/usecases/queries"
	"github.com/smaikl/GLG-bot/internal/core/ports"
	"github.com/smaikl/GLG-bot/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot builds the object graph once per process.
type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	uowFactory *persistence.GormUnitOfWorkFactory
	files      ports.FileStorage
	sessions   conversation.SessionStore
	// sweeper is nil when the session store expires entries itself.
	sweeper jobs.SessionSweeper
	closers []func() error
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	files, err := filestore.NewLocalStorage(cfg.FilesDir)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		uowFactory: persistence.NewGormUnitOfWorkFactory(gormDB),
		files:      files,
	}

	switch cfg.SessionStore {
	case SessionStoreRedis:
		client, err := sessionstore.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		c.sessions = sessionstore.NewRedisStore(client, cfg.SessionTTL)
		c.closers = append(c.closers, client.Close)
	case SessionStoreMemory:
		store := sessionstore.NewMemoryStore()
		c.sessions = store
		c.sweeper = store
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.SessionStore)
	}

	return c, nil
}

func (c *CompositionRoot) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) documentUoWFactory() commands.DocumentUoWFactory {
	return FuncDocumentUoWFactory(func() commands.DocumentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateUpdateProfileCommandHandler() commands.UpdateProfileCommandHandler {
	return commands.NewUpdateProfileCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAttachDocumentCommandHandler() commands.AttachDocumentCommandHandler {
	return commands.NewAttachDocumentCommandHandler(c.documentUoWFactory(), c.files)
}

func (c *CompositionRoot) CreateLifecycle(notifier commands.TransitionNotifier) telegram.Lifecycle {
	f := c.orderUoWFactory()
	return telegram.Lifecycle{
		Accept:          commands.NewAcceptOrderCommandHandler(f, notifier),
		MarkDelivered:   commands.NewMarkDeliveredCommandHandler(f, notifier),
		ConfirmDelivery: commands.NewConfirmDeliveryCommandHandler(f, notifier),
		Cancel:          commands.NewCancelOrderCommandHandler(f, notifier),
		UpdateStage:     commands.NewUpdateStageCommandHandler(f, notifier),
	}
}

// Query handlers read through a unit of work that is never begun, so every
// call runs on its own connection outside a transaction.

func (c *CompositionRoot) CreateGetUserQueryHandler() queries.GetUserQueryHandler {
	return queries.NewGetUserQueryHandler(c.uowFactory.Create().UserRepository())
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetActorOrdersQueryHandler() queries.GetActorOrdersQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetActorOrdersQueryHandler(uow.UserRepository(), uow.OrderRepository())
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetOrderDetailsQueryHandler(uow.UserRepository(), uow.OrderRepository())
}

func (c *CompositionRoot) CreateGetOrderDocumentsQueryHandler() queries.GetOrderDocumentsQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetOrderDocumentsQueryHandler(uow.OrderRepository(), uow.DocumentRepository())
}

func (c *CompositionRoot) CreateConversationEngine() *conversation.Engine {
	return conversation.NewEngine(c.sessions, conversation.Handlers{
		RegisterUser:   c.CreateRegisterUserCommandHandler(),
		CreateOrder:    c.CreateCreateOrderCommandHandler(),
		UpdateProfile:  c.CreateUpdateProfileCommandHandler(),
		AttachDocument: c.CreateAttachDocumentCommandHandler(),
		Users:          c.CreateGetUserQueryHandler(),
		OrderDetails:   c.CreateGetOrderDetailsQueryHandler(),
	}, c.logger)
}

// CreateBot wires the Telegram transport. Lifecycle notifications go out
// through the same API the bot polls with.
func (c *CompositionRoot) CreateBot(api telegram.API) *telegram.Bot {
	sender := telegram.NewSender(api, c.logger)
	dispatcher := notifications.NewDispatcher(sender, c.logger)

	handlers := telegram.NewHandlers(
		sender,
		telegram.NewHTTPFileDownloader(api),
		c.files,
		c.CreateConversationEngine(),
		c.CreateLifecycle(dispatcher),
		telegram.Queries{
			User:            c.CreateGetUserQueryHandler(),
			AvailableOrders: c.CreateGetAvailableOrdersQueryHandler(),
			ActorOrders:     c.CreateGetActorOrdersQueryHandler(),
			OrderDetails:    c.CreateGetOrderDetailsQueryHandler(),
			OrderDocuments:  c.CreateGetOrderDocumentsQueryHandler(),
		},
		c.logger,
	)
	return telegram.NewBot(api, handlers, c.cfg.TelegramWorkers, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *echo.Echo {
	return httpadapter.NewEcho(httpadapter.NewServer(c.CreateGetAvailableOrdersQueryHandler(), c.logger))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.sweeper, c.cfg.SessionSweepSchedule, c.cfg.SessionTTL, c.logger)
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDocumentUoWFactory func() commands.DocumentUoW

func (f FuncDocumentUoWFactory) Create() commands.DocumentUoW {
	return f()
}
