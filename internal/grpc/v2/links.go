package v2

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Totarae/linkbucket/internal/model"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// LinkStore операции над ссылками, доступные по gRPC. Реализуется service.LinkService.
type LinkStore interface {
	List(ctx context.Context, userID string) ([]*model.Link, error)
	Create(ctx context.Context, userID string, req model.CreateLinkRequest) (*model.Link, error)
}

// TokenVerifier проверяет bearer-токен и возвращает пользователя. Реализуется auth.Auth.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// LinkBucketServer сервис linkbucket.v1.LinkBucket. Сообщения описаны известными
// типами protobuf (Empty и Struct), поля как в JSON API.
type LinkBucketServer interface {
	ListLinks(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	SaveLink(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type linkServer struct {
	links    LinkStore
	verifier TokenVerifier
	logger   *zap.Logger
}

var linkBucketServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LinkBucketServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListLinks", Handler: listLinksHandler},
		{MethodName: "SaveLink", Handler: saveLinkHandler},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterLinkService подключает ListLinks и SaveLink. Вызывается до Serve.
func (s *GRPCServer) RegisterLinkService(links LinkStore, verifier TokenVerifier) {
	s.Server.RegisterService(&linkBucketServiceDesc, &linkServer{
		links:    links,
		verifier: verifier,
		logger:   s.Logger,
	})
}

func (l *linkServer) ListLinks(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	userID, err := l.userID(ctx)
	if err != nil {
		return nil, err
	}
	links, err := l.links.List(ctx, userID)
	if err != nil {
		l.logger.Error("Failed to load links", zap.String("user_id", userID), zap.Error(err))
		return nil, status.Error(codes.Internal, "Failed to load links")
	}
	return toStruct(model.LinksResponse{Links: links})
}

func (l *linkServer) SaveLink(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := l.userID(ctx)
	if err != nil {
		return nil, err
	}

	var in model.CreateLinkRequest
	raw, err := req.MarshalJSON()
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "Invalid request")
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, "Invalid request")
	}

	link, err := l.links.Create(ctx, userID, in)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			return nil, status.Error(codes.InvalidArgument, ve.Msg)
		}
		l.logger.Error("Failed to save link", zap.String("user_id", userID), zap.Error(err))
		return nil, status.Error(codes.Internal, "Failed to save link")
	}
	return toStruct(model.LinkResponse{Link: link})
}

// userID берёт пользователя из метаданных authorization: Bearer <jwt>.
func (l *linkServer) userID(ctx context.Context) (string, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	for _, v := range md.Get("authorization") {
		token, ok := strings.CutPrefix(v, "Bearer ")
		if !ok {
			continue
		}
		if userID, err := l.verifier.VerifyToken(strings.TrimSpace(token)); err == nil {
			return userID, nil
		}
	}
	return "", status.Error(codes.Unauthenticated, "Unauthorized")
}

// toStruct переводит ответ в Struct через его JSON-представление.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(raw); err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	return out, nil
}

func listLinksHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LinkBucketServer).ListLinks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListLinks"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LinkBucketServer).ListLinks(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func saveLinkHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LinkBucketServer).SaveLink(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/SaveLink"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LinkBucketServer).SaveLink(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
