package sqlinline

const QInsertCreation = `--sql 3f1c5e8a-92d4-4c6b-8f1e-6a7b0c2d9e41
insert into creations (user_id, prompt, content, type, file_url, publish)
values ($1::text, $2::text, $3::text, $4::text, $5::text, $6::boolean)
returning id, user_id, prompt, content, type, file_url, publish, likes, created_at;
`

const QSelectCreationsByUser = `--sql b8d20f47-15aa-4e09-9c3d-0e5f6a1b7c82
select id, user_id, prompt, content, type, file_url, publish, likes, created_at
from creations
where user_id = $1::text
order by created_at desc
offset $2
limit nullif($3, 0);
`

const QSelectPublicCreations = `--sql 7a9e3d12-c64f-48b5-a0d7-4f8e2b6c1a53
select id, user_id, prompt, content, type, likes, created_at
from creations
where publish = true
order by created_at desc
offset $1
limit $2;
`

const QToggleCreationLike = `--sql d4b6f982-3e71-4a5c-b9e8-2c0d5f7a8146
update creations
set likes = case
    when $1::text = any(likes) then array_remove(likes, $1::text)
    else array_append(likes, $1::text)
end
where id = $2
returning id, user_id, prompt, content, type, file_url, publish, likes, created_at;
`
