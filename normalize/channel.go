package normalize

import "github.com/MiaInturi/bundler/internal/pathutil"

// channelRegistry tracks origin-path to local-channel-pointer mappings,
// with the same basename-ambiguity detection the schema Registry uses.
type channelRegistry struct {
	originToPointer   map[string]string
	basenameToPointer map[string]string
	ambiguous         map[string]bool
}

func newChannelRegistry() *channelRegistry {
	return &channelRegistry{
		originToPointer:   make(map[string]string),
		basenameToPointer: make(map[string]string),
		ambiguous:         make(map[string]bool),
	}
}

func (cr *channelRegistry) register(origin, pointer string) {
	cr.originToPointer[origin] = pointer
	base := pathutil.Basename(origin)
	if existing, ok := cr.basenameToPointer[base]; ok {
		if existing != pointer {
			cr.ambiguous[base] = true
		}
		return
	}
	cr.basenameToPointer[base] = pointer
}

func (cr *channelRegistry) resolve(ref string) (string, bool) {
	if pointer, ok := cr.originToPointer[ref]; ok {
		return pointer, true
	}
	base := pathutil.Basename(ref)
	if cr.ambiguous[base] {
		return "", false
	}
	pointer, ok := cr.basenameToPointer[base]
	return pointer, ok
}

// RewriteChannelRefs maps every externally-originated channel to its
// local pointer, then rewrites operation channel.$ref and
// reply.channel.$ref values accordingly.
func RewriteChannelRefs(doc any) {
	root, ok := asMapping(doc)
	if !ok {
		return
	}
	cr := newChannelRegistry()
	collectChannels(root["channels"], pathutil.ChannelRef, cr)

	components, hasComponents := asMapping(root["components"])
	if hasComponents {
		collectChannels(components["channels"], pathutil.ComponentChannelRef, cr)
	}

	rewriteOperationChannels(root["operations"], cr)
	if hasComponents {
		rewriteOperationChannels(components["operations"], cr)
	}
}

func collectChannels(node any, prefix func(string) string, cr *channelRegistry) {
	channels, ok := asMapping(node)
	if !ok {
		return
	}
	for name, value := range channels {
		channel, ok := asMapping(value)
		if !ok {
			continue
		}
		origin, ok := originOf(channel)
		if !ok || !isExternalOrigin(origin) {
			continue
		}
		cr.register(origin, prefix(pathutil.EncodeJSONPointerSegment(name)))
	}
}

func rewriteOperationChannels(node any, cr *channelRegistry) {
	operations, ok := asMapping(node)
	if !ok {
		return
	}
	for _, value := range operations {
		op, ok := asMapping(value)
		if !ok {
			continue
		}
		rewriteChannelRef(op, "channel", cr)
		if reply, ok := asMapping(op["reply"]); ok {
			rewriteChannelRef(reply, "channel", cr)
		}
	}
}

func rewriteChannelRef(holder Mapping, key string, cr *channelRegistry) {
	channel, ok := asMapping(holder[key])
	if !ok {
		return
	}
	ref, isRef := isRefObject(channel)
	if !isRef || !isExternalOrigin(ref) {
		return
	}
	if pointer, ok := cr.resolve(ref); ok {
		holder[key] = Mapping{"$ref": pointer}
	}
}
