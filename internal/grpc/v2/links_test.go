package v2

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Totarae/linkbucket/internal/auth"
	"github.com/Totarae/linkbucket/internal/service"
	"github.com/Totarae/linkbucket/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const linkSecret = "grpc-secret"

func startLinkServer(t *testing.T) *grpc.ClientConn {
	t.Helper()
	logger := zap.NewNop()
	store, err := storage.NewMemoryStore("", logger)
	require.NoError(t, err)
	links := service.NewLinkService(store.Links(), store.Buckets(), nil, logger)
	a, err := auth.New(auth.Config{JWTSecret: linkSecret}, logger)
	require.NoError(t, err)

	s := NewGRPCServer(store, logger)
	s.RegisterLinkService(links, a)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Shutdown)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func withUser(t *testing.T, ctx context.Context, userID string) context.Context {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(linkSecret))
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func TestLinkService_SaveAndList(t *testing.T) {
	conn := startLinkServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{"url": "https://www.yandex.ru/search", "title": "Поиск"})
	require.NoError(t, err)

	saved := &structpb.Struct{}
	err = conn.Invoke(withUser(t, ctx, "alice"), "/"+ServiceName+"/SaveLink", req, saved)
	require.NoError(t, err)
	link := saved.GetFields()["link"].GetStructValue().GetFields()
	assert.Equal(t, "alice", link["userId"].GetStringValue())
	assert.Equal(t, "yandex.ru", link["domain"].GetStringValue())
	assert.Equal(t, "Поиск", link["title"].GetStringValue())

	listed := &structpb.Struct{}
	err = conn.Invoke(withUser(t, ctx, "alice"), "/"+ServiceName+"/ListLinks", &emptypb.Empty{}, listed)
	require.NoError(t, err)
	assert.Len(t, listed.GetFields()["links"].GetListValue().GetValues(), 1)

	other := &structpb.Struct{}
	err = conn.Invoke(withUser(t, ctx, "bob"), "/"+ServiceName+"/ListLinks", &emptypb.Empty{}, other)
	require.NoError(t, err)
	assert.Empty(t, other.GetFields()["links"].GetListValue().GetValues())
}

func TestLinkService_Errors(t *testing.T) {
	conn := startLinkServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := conn.Invoke(ctx, "/"+ServiceName+"/ListLinks", &emptypb.Empty{}, &structpb.Struct{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	bad := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer not.a.jwt")
	err = conn.Invoke(bad, "/"+ServiceName+"/ListLinks", &emptypb.Empty{}, &structpb.Struct{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	empty, err := structpb.NewStruct(map[string]any{"url": "  "})
	require.NoError(t, err)
	err = conn.Invoke(withUser(t, ctx, "alice"), "/"+ServiceName+"/SaveLink", empty, &structpb.Struct{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, "URL is required", status.Convert(err).Message())
}
