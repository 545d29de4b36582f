// Package userv1 は minhex.user.v1.UserService の gRPC サービス定義です。
// メッセージには google.protobuf.Struct を使用します。
package userv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName は gRPC のサービス名です。
	ServiceName = "minhex.user.v1.UserService"
	// CreateUserFullMethodName は CreateUser のフルメソッド名です。
	CreateUserFullMethodName = "/" + ServiceName + "/CreateUser"

	// FieldEmail などはリクエスト/レスポンスの Struct フィールド名です。
	FieldEmail  = "email"
	FieldName   = "name"
	FieldUserID = "user_id"
)

// UserServiceServer はサーバー側の実装が満たすインターフェースです。
type UserServiceServer interface {
	CreateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// UserService_ServiceDesc は UserService の grpc.ServiceDesc です。
var UserService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateUser",
			Handler:    createUserHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "minhex/user/v1/user.proto",
}

// RegisterUserServiceServer は srv を s に登録します。
func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&UserService_ServiceDesc, srv)
}

func createUserHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserServiceServer).CreateUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CreateUserFullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(UserServiceServer).CreateUser(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// UserServiceClient は UserService のクライアントです。
type UserServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewUserServiceClient は UserServiceClient を生成します。
func NewUserServiceClient(cc grpc.ClientConnInterface) *UserServiceClient {
	return &UserServiceClient{cc: cc}
}

// CreateUser は email と name でユーザーを作成し、採番された user_id を返します。
func (c *UserServiceClient) CreateUser(ctx context.Context, email, name string, opts ...grpc.CallOption) (string, error) {
	req, err := structpb.NewStruct(map[string]any{
		FieldEmail: email,
		FieldName:  name,
	})
	if err != nil {
		return "", err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CreateUserFullMethodName, req, out, opts...); err != nil {
		return "", err
	}
	return out.GetFields()[FieldUserID].GetStringValue(), nil
}
