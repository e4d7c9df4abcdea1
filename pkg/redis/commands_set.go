package redis

import (
	"context"

	"github.com/upstash/redis-go/internal/format"
	"github.com/upstash/redis-go/internal/protocol"
)

// SAdd adds the given members to the set at key and returns how many were
// newly added.
func (c *Client) SAdd(ctx context.Context, key string, members ...any) (int64, error) {
	if len(members) == 0 {
		return 0, validationErr("SADD", "at least one member is required")
	}
	res, err := c.run(ctx, append(protocol.Command{"SADD", key}, members...))
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// SCard returns the number of members in the set at key.
func (c *Client) SCard(ctx context.Context, key string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"SCARD", key})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// SDiff returns the members of the first set that appear in none of the
// others.
func (c *Client) SDiff(ctx context.Context, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		return nil, validationErr("SDIFF", "at least one key is required")
	}
	cmd := protocol.Command{"SDIFF"}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// SDiffStore writes the difference of the given sets to dst and returns its
// cardinality.
func (c *Client) SDiffStore(ctx context.Context, dst string, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, validationErr("SDIFFSTORE", "at least one key is required")
	}
	cmd := protocol.Command{"SDIFFSTORE", dst}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// SInter returns the members common to all given sets.
func (c *Client) SInter(ctx context.Context, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		return nil, validationErr("SINTER", "at least one key is required")
	}
	cmd := protocol.Command{"SINTER"}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// SInterStore writes the intersection of the given sets to dst and returns
// its cardinality.
func (c *Client) SInterStore(ctx context.Context, dst string, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, validationErr("SINTERSTORE", "at least one key is required")
	}
	cmd := protocol.Command{"SINTERSTORE", dst}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// SIsMember reports whether member is in the set at key.
func (c *Client) SIsMember(ctx context.Context, key string, member any) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"SISMEMBER", key, member})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// SMIsMember reports membership of every given member, in order.
func (c *Client) SMIsMember(ctx context.Context, key string, members ...any) ([]bool, error) {
	if len(members) == 0 {
		return nil, validationErr("SMISMEMBER", "at least one member is required")
	}
	res, err := c.run(ctx, append(protocol.Command{"SMISMEMBER", key}, members...))
	if err != nil {
		return nil, err
	}
	return asBoolSlice(res)
}

// SMembers returns every member of the set at key.
func (c *Client) SMembers(ctx context.Context, key string) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"SMEMBERS", key})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// SMove moves member from src to dst. It reports false when member was not
// in src.
func (c *Client) SMove(ctx context.Context, src, dst string, member any) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"SMOVE", src, dst, member})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// SPop removes and returns a random member of the set at key, or ErrNil
// when the set is empty.
func (c *Client) SPop(ctx context.Context, key string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"SPOP", key})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// SPopN removes and returns up to count random members of the set at key.
func (c *Client) SPopN(ctx context.Context, key string, count int64) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"SPOP", key, count})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// SRandMember returns a random member of the set at key without removing
// it, or ErrNil when the set is empty.
func (c *Client) SRandMember(ctx context.Context, key string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"SRANDMEMBER", key})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// SRandMemberN returns count random members. A negative count may repeat
// members.
func (c *Client) SRandMemberN(ctx context.Context, key string, count int64) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"SRANDMEMBER", key, count})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// SRem removes the given members from the set at key and returns how many
// were present.
func (c *Client) SRem(ctx context.Context, key string, members ...any) (int64, error) {
	if len(members) == 0 {
		return 0, validationErr("SREM", "at least one member is required")
	}
	res, err := c.run(ctx, append(protocol.Command{"SREM", key}, members...))
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// SScan iterates the set at key one page at a time, returning the members
// of the page and the cursor for the next call.
func (c *Client) SScan(ctx context.Context, key string, cursor uint64, match string, count int64) ([]string, uint64, error) {
	cmd := protocol.Command{"SSCAN", key, cursor}
	if match != "" {
		cmd = append(cmd, "MATCH", match)
	}
	if count > 0 {
		cmd = append(cmd, "COUNT", count)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, 0, err
	}
	page, ok := res.(format.ScanResult)
	if !ok {
		return nil, 0, replyTypeErr(res, "scan page")
	}
	return page.Keys, page.Cursor, nil
}

// SUnion returns the members of the union of all given sets.
func (c *Client) SUnion(ctx context.Context, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		return nil, validationErr("SUNION", "at least one key is required")
	}
	cmd := protocol.Command{"SUNION"}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// SUnionStore writes the union of the given sets to dst and returns its
// cardinality.
func (c *Client) SUnionStore(ctx context.Context, dst string, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, validationErr("SUNIONSTORE", "at least one key is required")
	}
	cmd := protocol.Command{"SUNIONSTORE", dst}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}
